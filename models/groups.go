// file: models/groups.go
package models

// GroupType identifies an authorization group carried in the auth token.
// The registry below is static; a test asserts the identifiers are unique.
type GroupType string

const (
	GroupCompetitionAdmin GroupType = "competition_admin"
	GroupSchoolsBDS       GroupType = "schools_bds"
)

// AllGroups is the explicit registry of every group the module checks.
var AllGroups = []GroupType{
	GroupCompetitionAdmin,
	GroupSchoolsBDS,
}
