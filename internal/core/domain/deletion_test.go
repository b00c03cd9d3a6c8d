package domain_test

import (
	"testing"

	"github.com/flowhive/flowhive_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestDeletionPolicyFor(t *testing.T) {
	assert.Equal(t, domain.SoftDelete, domain.DeletionPolicyFor(domain.EntityTaskCategory))

	hard := []domain.EntityKind{
		domain.EntityUser,
		domain.EntityWorkspace,
		domain.EntityWorkspaceMember,
		domain.EntityFieldActivity,
		domain.EntityFieldActivityPhoto,
		domain.EntityMeetingMinute,
		domain.EntityMinuteAttachment,
		domain.EntityMinuteActionItem,
		domain.EntityProject,
		domain.EntityTaskList,
		domain.EntityTask,
		domain.EntityTaskComment,
		domain.EntityTaskAttachment,
		domain.EntityKind("something_new"),
	}
	for _, kind := range hard {
		assert.Equal(t, domain.HardDelete, domain.DeletionPolicyFor(kind), string(kind))
	}
}
