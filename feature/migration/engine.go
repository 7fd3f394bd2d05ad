package migration

import (
	"context"
	"fmt"

	"sheet-sync/core/utils"
	"sheet-sync/feature/migration/platform"
	"sheet-sync/feature/sheet"

	"go.uber.org/zap"
)

// Engine reconciles one row's declared state against the remote entities
// it represents. Failures are row-scoped: each sub-step that fails adds
// to the row's error list, and the caller moves on to the next row.
type Engine struct {
	client  platform.Client
	tracker *Tracker
	cfg     *platform.Config
	log     *zap.Logger
}

// NewEngine creates an Engine recording into tracker.
func NewEngine(client platform.Client, tracker *Tracker, cfg *platform.Config, log *zap.Logger) *Engine {
	return &Engine{client: client, tracker: tracker, cfg: cfg, log: log}
}

// ReconcileRow runs both sub-protocols on one row and returns the number
// of errors it produced. The row's error state is resolved first, so a
// clean pass leaves no stale error text behind.
func (e *Engine) ReconcileRow(ctx context.Context, row *sheet.Row) (int, error) {
	if err := row.MarkResolved(ctx); err != nil {
		return 0, err
	}

	var problems []string
	problems = append(problems, e.syncLegacy(ctx, row)...)
	problems = append(problems, e.syncReplacement(ctx, row)...)

	if len(problems) > 0 {
		if err := row.MarkError(ctx, problems); err != nil {
			return len(problems), err
		}
	}
	return len(problems), nil
}

// syncLegacy aligns the legacy ad's status and labels with the row. It
// only acts once the replacement entity exists: before migration the
// legacy ad is left alone.
func (e *Engine) syncLegacy(ctx context.Context, row *sheet.Row) []string {
	replacementID, _ := row.String(sheet.FieldExpandedAdID)
	if replacementID == "" {
		return nil
	}
	groupID, _ := row.String(sheet.FieldAdGroupID)
	adID, _ := row.String(sheet.FieldAdID)
	if groupID == "" || adID == "" {
		return nil
	}

	entity, err := e.client.FindEntity(ctx, groupID, adID)
	if err != nil {
		return []string{fmt.Sprintf("failed to resolve ad %s: %v", adID, err)}
	}
	if entity == nil {
		return []string{fmt.Sprintf("ad %s not found in group %s", adID, groupID)}
	}

	e.tracker.Begin(adID, groupID)

	var problems []string
	declared, _ := row.String(sheet.FieldAdStatus)
	problems = append(problems, e.syncStatus(ctx, entity, sheet.FieldAdStatus, declared)...)

	if declared != sheet.StatusDisabled {
		labels, err := row.List(sheet.FieldAdLabels)
		if err != nil {
			problems = append(problems, err.Error())
		} else {
			target := unionLabel(labels, e.cfg.DefaultLabel)
			problems = append(problems, e.syncLabels(ctx, entity, sheet.FieldAdLabels, target)...)
		}
	}
	return problems
}

// syncReplacement runs the replacement entity's three-branch machine:
// create when the row signals readiness, align when the entity exists,
// otherwise do nothing.
func (e *Engine) syncReplacement(ctx context.Context, row *sheet.Row) []string {
	replacementID, _ := row.String(sheet.FieldExpandedAdID)
	ready, _ := row.String(sheet.FieldCreateExpandedAd)

	switch {
	case utils.ToBool(ready) && replacementID == "":
		return e.createReplacement(ctx, row)
	case replacementID != "":
		return e.alignReplacement(ctx, row, replacementID)
	default:
		return nil
	}
}

func (e *Engine) createReplacement(ctx context.Context, row *sheet.Row) []string {
	fields, problems := BuildCreateFields(row)
	if len(problems) > 0 {
		return problems
	}

	groupID, _ := row.String(sheet.FieldAdGroupID)
	exists, err := e.client.FindParentGroup(ctx, groupID)
	if err != nil {
		return []string{fmt.Sprintf("failed to resolve ad group %s: %v", groupID, err)}
	}
	if !exists {
		return []string{fmt.Sprintf("ad group %s does not exist", groupID)}
	}

	result, err := e.client.CreateEntity(ctx, groupID, fields)
	if err != nil {
		return []string{fmt.Sprintf("failed to create expanded ad: %v", err)}
	}
	if !result.OK {
		return result.Errors
	}

	entity := result.Entity
	if err := row.Set(ctx, sheet.FieldExpandedAdID, entity.ID()); err != nil {
		return []string{fmt.Sprintf("failed to record expanded ad id: %v", err)}
	}
	if err := row.Set(ctx, sheet.FieldExpandedAdStatus, string(platform.StatusPaused)); err != nil {
		return []string{fmt.Sprintf("failed to record expanded ad status: %v", err)}
	}
	e.tracker.TrackCreate(entity.ID(), groupID)
	e.log.Info("Created expanded ad",
		zap.String("id", entity.ID()), zap.String("group", groupID), zap.Int("row", row.Index()))

	var out []string
	declared, _ := row.String(sheet.FieldExpandedAdStatus)
	out = append(out, e.syncStatus(ctx, entity, sheet.FieldExpandedAdStatus, declared)...)
	labels, err := row.List(sheet.FieldLabels)
	if err != nil {
		out = append(out, err.Error())
	} else {
		out = append(out, e.syncLabels(ctx, entity, sheet.FieldLabels, labels)...)
	}
	return out
}

func (e *Engine) alignReplacement(ctx context.Context, row *sheet.Row, entityID string) []string {
	groupID, _ := row.String(sheet.FieldAdGroupID)

	entity, err := e.client.FindEntity(ctx, groupID, entityID)
	if err != nil {
		return []string{fmt.Sprintf("failed to resolve expanded ad %s: %v", entityID, err)}
	}
	if entity == nil {
		return []string{fmt.Sprintf("expanded ad %s not found in group %s", entityID, groupID)}
	}

	e.tracker.Begin(entityID, groupID)

	var problems []string
	if err := row.Set(ctx, sheet.FieldApprovalStatus, entity.ApprovalStatus()); err != nil {
		problems = append(problems, fmt.Sprintf("failed to record approval status: %v", err))
	}

	declared, _ := row.String(sheet.FieldExpandedAdStatus)
	problems = append(problems, e.syncStatus(ctx, entity, sheet.FieldExpandedAdStatus, declared)...)

	if declared != sheet.StatusDisabled {
		labels, err := row.List(sheet.FieldLabels)
		if err != nil {
			problems = append(problems, err.Error())
		} else {
			problems = append(problems, e.syncLabels(ctx, entity, sheet.FieldLabels, labels)...)
		}
	}
	return problems
}

// syncStatus aligns the entity's serving state with the declared value.
// Equal states short-circuit before any remote call, so a repeated sync
// performs exactly one mutation.
func (e *Engine) syncStatus(ctx context.Context, entity platform.Entity, field, declared string) []string {
	target, err := platform.ParseStatus(declared)
	if err != nil {
		return []string{fmt.Sprintf("%s: %v", field, err)}
	}
	if entity.Status() == target {
		return nil
	}
	if err := e.client.SetStatus(ctx, entity.GroupID(), entity.ID(), target); err != nil {
		return []string{fmt.Sprintf("%s: failed to set status to %s: %v", field, target, err)}
	}
	e.tracker.TrackChange(field, string(entity.Status()), string(target))
	return nil
}

// syncLabels aligns the entity's labels with target. The diff is computed
// first; an empty diff means no remote call at all. Individual apply
// failures do not roll back what already succeeded, but the whole sync is
// reported as failed and the change is not tracked.
func (e *Engine) syncLabels(ctx context.Context, entity platform.Entity, field string, target []string) []string {
	diff := DiffLabels(entity.Labels(), target)
	if !diff.HasDiff {
		return nil
	}

	var problems []string
	for _, name := range diff.Add {
		if _, err := e.client.EnsureLabel(ctx, name); err != nil {
			problems = append(problems, fmt.Sprintf("%s: failed to ensure label %q: %v", field, name, err))
			continue
		}
		if err := e.client.ApplyLabel(ctx, entity.GroupID(), entity.ID(), name); err != nil {
			problems = append(problems, fmt.Sprintf("%s: failed to apply label %q: %v", field, name, err))
		}
	}
	for _, name := range diff.Remove {
		if err := e.client.RemoveLabel(ctx, entity.GroupID(), entity.ID(), name); err != nil {
			problems = append(problems, fmt.Sprintf("%s: failed to remove label %q: %v", field, name, err))
		}
	}
	if len(problems) > 0 {
		return problems
	}
	e.tracker.TrackChangeList(field, entity.Labels(), target)
	return nil
}
