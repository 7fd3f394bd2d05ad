package sheet

// Logical field names. The header row of the sheet carries these names;
// the column map is built from it at open time.
const (
	FieldCampaignName     = "campaignName"
	FieldAdGroupName      = "adGroupName"
	FieldAdGroupID        = "adGroupId"
	FieldAdID             = "adId"
	FieldAdStatus         = "adStatus"
	FieldAdLabels         = "adLabels"
	FieldCreateExpandedAd = "createExpandedAd"
	FieldExpandedAdID     = "expandedAdId"
	FieldExpandedAdStatus = "expandedAdStatus"
	FieldApprovalStatus   = "approvalStatus"
	FieldFinalURL         = "finalUrl"
	FieldMobileFinalURL   = "mobileFinalUrl"
	FieldHeadline1        = "headline1"
	FieldHeadline2        = "headline2"
	FieldDescription      = "description"
	FieldPath1            = "path1"
	FieldPath2            = "path2"
	FieldCustomParameters = "customParameters"
	FieldLabels           = "labels"
	FieldErrorMessages    = "errorMessages"
)

// StatusDisabled is the declared status value that freezes an entity's
// fields against further edits.
const StatusDisabled = "disabled"

// expandedAdFields are the fields owned by the replacement (expanded) ad.
// They freeze together once the entity is created or disabled.
var expandedAdFields = map[string]bool{
	FieldCreateExpandedAd: true,
	FieldExpandedAdID:     true,
	FieldExpandedAdStatus: true,
	FieldFinalURL:         true,
	FieldMobileFinalURL:   true,
	FieldHeadline1:        true,
	FieldHeadline2:        true,
	FieldDescription:      true,
	FieldPath1:            true,
	FieldPath2:            true,
	FieldCustomParameters: true,
	FieldLabels:           true,
}

// statusFields are the fields whose previous value participates in the
// read-only derivation (a status that was disabled stays read-only).
var statusFields = map[string]bool{
	FieldAdStatus:         true,
	FieldExpandedAdStatus: true,
}
