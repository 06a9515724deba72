package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"YSFinancials/models"
	"YSFinancials/pkg/errs"
	"YSFinancials/pkg/validation"
)

type stubStore struct {
	mu       sync.Mutex
	inserted []*models.Inquiry
	err      error
	block    bool
}

func (s *stubStore) Insert(ctx context.Context, inq *models.Inquiry) error {
	if s.block {
		<-ctx.Done()
		return ctx.Err()
	}
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	s.inserted = append(s.inserted, inq)
	s.mu.Unlock()
	return nil
}

func (s *stubStore) Ping(context.Context) error { return s.err }
func (s *stubStore) Close() error               { return nil }

var janeDoe = validation.Submission{
	Name:    "Jane Doe",
	Email:   "jane@example.com",
	Message: "Please contact me about retirement planning.",
}

func TestSubmitStoresValidInquiry(t *testing.T) {
	st := &stubStore{}
	svc := NewInquiryService(st, time.Second, zap.NewNop())
	fixed := time.Date(2026, 3, 1, 10, 0, 0, 0, time.FixedZone("IST", 5*3600+1800))
	svc.now = func() time.Time { return fixed }

	inq, err := svc.Submit(context.Background(), validation.Submission{
		Name:    "  Jane Doe ",
		Email:   "jane@example.com",
		Message: "  Please contact me about retirement planning.  ",
	})
	require.NoError(t, err)

	require.Len(t, st.inserted, 1)
	assert.Same(t, inq, st.inserted[0])
	assert.Equal(t, "Jane Doe", inq.Name)
	assert.Equal(t, "jane@example.com", inq.Email)
	assert.Equal(t, "Please contact me about retirement planning.", inq.Message)
	assert.Equal(t, fixed.UTC(), inq.CreatedAt)
	assert.Equal(t, time.UTC, inq.CreatedAt.Location())
	assert.NotEmpty(t, inq.ID)
}

func TestSubmitTwiceCreatesTwoRecords(t *testing.T) {
	st := &stubStore{}
	svc := NewInquiryService(st, time.Second, zap.NewNop())

	a, err := svc.Submit(context.Background(), janeDoe)
	require.NoError(t, err)
	b, err := svc.Submit(context.Background(), janeDoe)
	require.NoError(t, err)

	assert.Len(t, st.inserted, 2)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestSubmitRejectsInvalidWithoutWriting(t *testing.T) {
	st := &stubStore{}
	svc := NewInquiryService(st, time.Second, zap.NewNop())

	_, err := svc.Submit(context.Background(), validation.Submission{Email: "not-an-email", Message: "hi"})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.KindValidation))

	var verrs validation.Errors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs, 3)
	assert.Empty(t, st.inserted)
}

func TestSubmitStoreFailure(t *testing.T) {
	cause := errors.New("connection refused")
	svc := NewInquiryService(&stubStore{err: cause}, time.Second, zap.NewNop())

	_, err := svc.Submit(context.Background(), janeDoe)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.KindPersistence))
	assert.ErrorIs(t, err, cause)
}

func TestSubmitTimesOut(t *testing.T) {
	svc := NewInquiryService(&stubStore{block: true}, 20*time.Millisecond, zap.NewNop())

	start := time.Now()
	_, err := svc.Submit(context.Background(), janeDoe)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.KindPersistence))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}
