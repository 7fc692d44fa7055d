package models

// Profile aggregates a user with their dependent records.
type Profile struct {
	User       PublicUser      `json:"user"`
	Reputation ReputationDB    `json:"reputation"`
	Credits    CreditBalanceDB `json:"credits"`
	Stats      SocialStatsDB   `json:"stats"`
	Skills     []SkillDB       `json:"skills,omitempty"`
}
