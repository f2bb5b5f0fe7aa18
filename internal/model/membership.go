package model

// Membership is the directory relation backing per-level "belongs to
// node" checks. One row per (level, node, user).
type Membership struct {
	ID     uint       `gorm:"primarykey" json:"id"`
	Scope  ScopeLevel `json:"scope" gorm:"not null;uniqueIndex:uq_membership,priority:1"`
	NodeID uint       `json:"node_id" gorm:"not null;uniqueIndex:uq_membership,priority:2"`
	UserID uint       `json:"user_id" gorm:"not null;uniqueIndex:uq_membership,priority:3;index"`
}

// CourseGroupMember records a user's membership in one group of a course.
type CourseGroupMember struct {
	ID       uint `gorm:"primarykey" json:"id"`
	CourseID uint `json:"course_id" gorm:"not null;uniqueIndex:uq_course_group_member,priority:1"`
	GroupID  uint `json:"group_id" gorm:"not null;uniqueIndex:uq_course_group_member,priority:2"`
	UserID   uint `json:"user_id" gorm:"not null;uniqueIndex:uq_course_group_member,priority:3;index"`
}
