package models

import "time"

const (
	MinVoteValue = 1
	MaxVoteValue = 10
)

// Vote records one user rating another. The composite unique index is the
// authoritative guard against double voting: a concurrent duplicate that
// slips past the application-level read fails on insert.
type Vote struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	VoterID  uint `gorm:"not null;uniqueIndex:idx_votes_voter_target;index:idx_votes_voter_created"`
	TargetID uint `gorm:"not null;uniqueIndex:idx_votes_voter_target;index:idx_votes_target_created"`
	Value    int  `gorm:"not null"`

	Voter  *User `gorm:"foreignKey:VoterID"`
	Target *User `gorm:"foreignKey:TargetID"`
}
