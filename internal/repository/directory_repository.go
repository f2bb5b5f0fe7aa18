package repository

import (
	"fmt"

	"github.com/hqanh/campoll/internal/access"
	"github.com/hqanh/campoll/internal/model"
	"gorm.io/gorm"
)

// DirectoryRepository is the store-backed implementation of the two
// directory contracts the access engine consumes.
type DirectoryRepository interface {
	access.MembershipDirectory
	access.GroupDirectory
}

type directoryRepository struct {
	db *gorm.DB
}

func NewDirectoryRepository(db *gorm.DB) DirectoryRepository {
	return &directoryRepository{db: db}
}

func (r *directoryRepository) BelongsTo(level model.ScopeLevel, nodeID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.Membership{}).
		Where("scope = ? AND node_id = ? AND user_id = ?", level, nodeID, userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to query membership at %s node %d: %w", level, nodeID, err)
	}
	return count > 0, nil
}

func (r *directoryRepository) UserGroupsInCourse(courseID, userID uint) ([]uint, error) {
	var groupIDs []uint
	err := r.db.Model(&model.CourseGroupMember{}).
		Where("course_id = ? AND user_id = ?", courseID, userID).
		Pluck("group_id", &groupIDs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query groups of user %d in course %d: %w", userID, courseID, err)
	}
	return groupIDs, nil
}
