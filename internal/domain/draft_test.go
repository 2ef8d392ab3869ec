package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskDraft_Validate(t *testing.T) {
	d := TaskDraft{Title: "A", ClientID: "c1", ClientName: "C"}
	require.NoError(t, d.Validate())
	assert.Equal(t, PriorityMedium, d.Priority)

	d = TaskDraft{ClientID: "c1", ClientName: "C"}
	assert.ErrorIs(t, d.Validate(), ErrEmptyTitle)

	d = TaskDraft{Title: "A"}
	assert.ErrorIs(t, d.Validate(), ErrMissingClient)

	d = TaskDraft{Title: "A", ClientID: "c1", ClientName: "C", Priority: "critical"}
	assert.ErrorIs(t, d.Validate(), ErrInvalidPriority)
}

func TestParseTaskDrafts(t *testing.T) {
	content := []byte(`
- title: Replace projector cable
  priority: high
  clientId: c1
  clientName: Mike Client
- title: Password reset for new hire
  clientId: c2
  clientName: Dana Ops
`)
	drafts, err := ParseTaskDrafts(content)
	require.NoError(t, err)
	require.Len(t, drafts, 2)
	assert.Equal(t, PriorityHigh, drafts[0].Priority)
	assert.Equal(t, "Password reset for new hire", drafts[1].Title)

	// Validation (and priority defaulting) is a separate step.
	require.NoError(t, drafts[1].Validate())
	assert.Equal(t, PriorityMedium, drafts[1].Priority)
}

func TestParseTaskDrafts_Errors(t *testing.T) {
	_, err := ParseTaskDrafts(nil)
	assert.ErrorIs(t, err, ErrEmptyFile)

	_, err = ParseTaskDrafts([]byte("[]"))
	assert.ErrorIs(t, err, ErrNoDraftsInFile)

	_, err = ParseTaskDrafts([]byte("{not yaml"))
	assert.Error(t, err)
}
