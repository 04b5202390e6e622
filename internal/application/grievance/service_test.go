package grievance

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/grievance-hub/grievance-hub/internal/application/alert"
	"github.com/grievance-hub/grievance-hub/internal/domain/complaint"
	"github.com/grievance-hub/grievance-hub/internal/domain/oracle"
	"github.com/grievance-hub/grievance-hub/internal/domain/oracle/mocks"
	"github.com/grievance-hub/grievance-hub/internal/registry"
)

const (
	owner    = complaint.Principal("u1")
	party    = complaint.Principal("u2")
	admin    = complaint.Principal("admin")
	treasury = complaint.Principal("treasury")
)

type fakeArchiver struct {
	snapshots []complaint.Complaint
	entries   []complaint.HistoryEntry
	fail      error
}

func (f *fakeArchiver) ArchiveComplaint(ctx context.Context, c complaint.Complaint) error {
	if f.fail != nil {
		return f.fail
	}
	f.snapshots = append(f.snapshots, c)
	return nil
}

func (f *fakeArchiver) ArchiveHistory(ctx context.Context, id int64, entry complaint.HistoryEntry) error {
	if f.fail != nil {
		return f.fail
	}
	f.entries = append(f.entries, entry)
	return nil
}

func newTestService(t *testing.T, archiver Archiver) (*Service, *mocks.MockPayer) {
	t.Helper()
	ctrl := gomock.NewController(t)

	auth := mocks.NewMockAuthorizer(ctrl)
	auth.EXPECT().IsRegistered(gomock.Any()).Return(true).AnyTimes()
	payer := mocks.NewMockPayer(ctrl)

	reg := registry.New(oracle.NewLogicalClock(1), auth, payer, registry.Config{
		Administrator: admin,
		Treasury:      treasury,
		EscalationFee: 50,
	})
	return NewService(reg, archiver, nil, zerolog.Nop()), payer
}

func TestSubmitMirrorsToArchive(t *testing.T) {
	archiver := &fakeArchiver{}
	svc, _ := newTestService(t, archiver)

	id, err := svc.Submit(context.Background(), owner, "Faulty product", "electronics", nil, []complaint.Principal{party})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	require.Len(t, archiver.snapshots, 1)
	assert.Equal(t, int64(1), archiver.snapshots[0].ID)
	assert.Equal(t, complaint.StatusOpen, archiver.snapshots[0].Status)
	require.Len(t, archiver.entries, 1)
	assert.Equal(t, "submitted", archiver.entries[0].Action)
}

func TestFailedOperationDoesNotMirror(t *testing.T) {
	archiver := &fakeArchiver{}
	svc, _ := newTestService(t, archiver)

	err := svc.Update(context.Background(), owner, 42, registry.UpdateInput{})
	assert.Equal(t, complaint.CodeNotFound, complaint.CodeOf(err))
	assert.Empty(t, archiver.snapshots)
	assert.Empty(t, archiver.entries)
}

func TestArchiveFailureDoesNotFailOperation(t *testing.T) {
	archiver := &fakeArchiver{fail: errors.New("archive down")}
	svc, _ := newTestService(t, archiver)

	id, err := svc.Submit(context.Background(), owner, "desc", "cat", nil, nil)
	require.NoError(t, err)

	c, ok := svc.Get(id)
	require.True(t, ok)
	assert.Equal(t, complaint.StatusOpen, c.Status)
}

func TestEscalateChargesFee(t *testing.T) {
	archiver := &fakeArchiver{}
	svc, payer := newTestService(t, archiver)

	id, err := svc.Submit(context.Background(), owner, "desc", "cat", nil, []complaint.Principal{party})
	require.NoError(t, err)

	payer.EXPECT().Transfer(int64(50), owner, treasury).Return(nil)
	require.NoError(t, svc.Escalate(context.Background(), owner, id))

	c, _ := svc.Get(id)
	assert.Equal(t, 1, c.EscalationLevel)
	assert.Equal(t, complaint.StatusEscalated, c.Status)
}

func TestEscalatePaymentRejected(t *testing.T) {
	svc, payer := newTestService(t, nil)

	id, err := svc.Submit(context.Background(), owner, "desc", "cat", nil, nil)
	require.NoError(t, err)

	payer.EXPECT().Transfer(int64(50), owner, treasury).Return(errors.New("insufficient funds"))
	err = svc.Escalate(context.Background(), owner, id)
	assert.Equal(t, complaint.CodePaymentFailed, complaint.CodeOf(err))

	c, _ := svc.Get(id)
	assert.Equal(t, 0, c.EscalationLevel)
}

func TestFullResolutionFlow(t *testing.T) {
	archiver := &fakeArchiver{}
	svc, payer := newTestService(t, archiver)
	ctx := context.Background()

	id, err := svc.Submit(ctx, owner, "Faulty product", "electronics", []string{"h1"}, []complaint.Principal{party})
	require.NoError(t, err)

	payer.EXPECT().Transfer(int64(50), owner, treasury).Return(nil)
	require.NoError(t, svc.Escalate(ctx, owner, id))
	require.NoError(t, svc.ProposeResolution(ctx, party, id, "Fix it"))
	require.NoError(t, svc.AcceptResolution(ctx, owner, id))

	c, ok := svc.Get(id)
	require.True(t, ok)
	assert.True(t, c.Resolved)
	assert.Equal(t, complaint.StatusResolved, c.Status)

	st, ok := svc.CategoryStats("electronics")
	require.True(t, ok)
	assert.Equal(t, uint64(1), st.Count)
	assert.Equal(t, uint64(1), st.Resolved)

	// One snapshot per successful mutation.
	assert.Len(t, archiver.snapshots, 4)
	last := archiver.entries[len(archiver.entries)-1]
	assert.Equal(t, "resolution-accepted", last.Action)
}

func TestAlertEvaluationOnSubmit(t *testing.T) {
	evaluator, err := alert.Parse("any=count > 0")
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	auth := mocks.NewMockAuthorizer(ctrl)
	auth.EXPECT().IsRegistered(owner).Return(true)
	reg := registry.New(oracle.NewLogicalClock(1), auth, mocks.NewMockPayer(ctrl), registry.Config{Administrator: admin})

	svc := NewService(reg, nil, evaluator, zerolog.Nop())
	_, err = svc.Submit(context.Background(), owner, "desc", "cat", nil, nil)
	require.NoError(t, err)
}

func TestAdministrationPassThrough(t *testing.T) {
	svc, _ := newTestService(t, nil)

	assert.Equal(t, complaint.CodeUnauthorized, complaint.CodeOf(svc.SetEscalationFee(owner, 10)))
	require.NoError(t, svc.SetEscalationFee(admin, 10))

	require.NoError(t, svc.TransferAdministration(admin, owner))
	require.NoError(t, svc.SetEscalationFee(owner, 20))
}
