package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/halcyonworks/mission-control/domain"
)

func TestLeadService_Capture(t *testing.T) {
	ctx := context.Background()

	t.Run("NormalizesEmail", func(t *testing.T) {
		repo := new(MockLeadRepository)
		svc := NewLeadService(repo)

		repo.On("CreateLead", ctx, mock.MatchedBy(func(l *domain.Lead) bool {
			return l.Email == "jo@example.com" && l.Name == "Jo"
		})).Return(nil).Once()

		lead, err := svc.Capture(ctx, CaptureLeadInput{
			Name:  " Jo ",
			Email: " JO@Example.COM ",
		})
		require.NoError(t, err)
		assert.Equal(t, "jo@example.com", lead.Email)
		repo.AssertExpectations(t)
	})

	t.Run("RejectsMalformedEmail", func(t *testing.T) {
		repo := new(MockLeadRepository)
		svc := NewLeadService(repo)

		_, err := svc.Capture(ctx, CaptureLeadInput{Name: "Jo", Email: "not-an-email"})
		assert.ErrorIs(t, err, ErrInvalidInput)
		repo.AssertNotCalled(t, "CreateLead", mock.Anything, mock.Anything)
	})

	t.Run("RejectsMissingName", func(t *testing.T) {
		svc := NewLeadService(new(MockLeadRepository))

		_, err := svc.Capture(ctx, CaptureLeadInput{Email: "jo@example.com"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestLeadService_Subscribe(t *testing.T) {
	ctx := context.Background()
	repo := new(MockLeadRepository)
	svc := NewLeadService(repo)

	repo.On("Subscribe", ctx, mock.MatchedBy(func(s *domain.NewsletterSubscriber) bool {
		return s.Email == "jo@example.com"
	})).Return(nil).Twice()

	require.NoError(t, svc.Subscribe(ctx, "JO@example.com"))
	// A duplicate signup surfaces as success too; the repository
	// swallows the unique-index conflict.
	require.NoError(t, svc.Subscribe(ctx, "jo@example.com"))

	err := svc.Subscribe(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
