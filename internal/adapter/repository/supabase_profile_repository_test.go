package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/summitcoaching/membership-service/internal/domain/model"
)

func newTestProfile(email string, membership model.MembershipType) model.Profile {
	return model.Profile{
		UserID:         uuid.New(),
		Email:          email,
		MembershipType: membership,
	}
}

func TestSupabaseProfileRepository_GetByUserID(t *testing.T) {
	logger := zap.NewNop()
	userID := "550e8400-e29b-41d4-a716-446655440000"

	tests := []struct {
		name               string
		mockServerResponse func(w http.ResponseWriter, r *http.Request)
		expectFound        bool
		expectedError      bool
	}{
		{
			name: "profile found",
			mockServerResponse: func(w http.ResponseWriter, r *http.Request) {
				// Verify request parameters
				assert.Equal(t, "/rest/v1/profiles", r.URL.Path)
				assert.Equal(t, "eq."+userID, r.URL.Query().Get("id"))
				assert.Equal(t, "*", r.URL.Query().Get("select"))
				assert.Equal(t, "1", r.URL.Query().Get("limit"))

				// Verify headers
				assert.Equal(t, "test-api-key", r.Header.Get("apikey"))
				assert.Equal(t, "Bearer test-api-key", r.Header.Get("Authorization"))
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

				profiles := []model.Profile{newTestProfile("coachee@example.com", model.MembershipBasic)}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				json.NewEncoder(w).Encode(profiles)
			},
			expectFound: true,
		},
		{
			name: "no row returns nil without error",
			mockServerResponse: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				json.NewEncoder(w).Encode([]model.Profile{})
			},
			expectFound: false,
		},
		{
			name: "server error surfaces as store error",
			mockServerResponse: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			expectedError: true,
		},
		{
			name: "unauthorized surfaces as store error",
			mockServerResponse: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(tt.mockServerResponse))
			defer server.Close()

			repo := NewSupabaseProfileRepository(server.URL, "test-api-key", logger)
			profile, err := repo.GetByUserID(context.Background(), userID)

			if tt.expectedError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			if tt.expectFound {
				assert.NotNil(t, profile)
				assert.Equal(t, "coachee@example.com", profile.Email)
			} else {
				assert.Nil(t, profile)
			}
		})
	}
}

func TestSupabaseProfileRepository_ClaimStripeCustomerID(t *testing.T) {
	logger := zap.NewNop()
	userID := "550e8400-e29b-41d4-a716-446655440000"

	t.Run("claim won", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPatch, r.Method)
			assert.Equal(t, "eq."+userID, r.URL.Query().Get("id"))
			assert.Equal(t, "(stripe_customer_id.is.null,stripe_customer_id.eq.)", r.URL.Query().Get("or"))
			assert.Equal(t, "return=representation", r.Header.Get("Prefer"))

			var body map[string]string
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "cus_123", body["stripe_customer_id"])

			updated := []model.Profile{newTestProfile("coachee@example.com", model.MembershipFree)}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(updated)
		}))
		defer server.Close()

		repo := NewSupabaseProfileRepository(server.URL, "test-api-key", logger)
		claimed, err := repo.ClaimStripeCustomerID(context.Background(), userID, "cus_123")

		assert.NoError(t, err)
		assert.True(t, claimed)
	})

	t.Run("empty customer id counts as unclaimed", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// A row with stripe_customer_id = '' must still match the
			// unclaimed filter, like the postgres backend.
			orFilter := r.URL.Query().Get("or")
			assert.Contains(t, orFilter, "stripe_customer_id.eq.")
			assert.Contains(t, orFilter, "stripe_customer_id.is.null")

			updated := []model.Profile{newTestProfile("coachee@example.com", model.MembershipFree)}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(updated)
		}))
		defer server.Close()

		repo := NewSupabaseProfileRepository(server.URL, "test-api-key", logger)
		claimed, err := repo.ClaimStripeCustomerID(context.Background(), userID, "cus_123")

		assert.NoError(t, err)
		assert.True(t, claimed)
	})

	t.Run("claim lost when a customer id already exists", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// The unclaimed filter matched nothing
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode([]model.Profile{})
		}))
		defer server.Close()

		repo := NewSupabaseProfileRepository(server.URL, "test-api-key", logger)
		claimed, err := repo.ClaimStripeCustomerID(context.Background(), userID, "cus_123")

		assert.NoError(t, err)
		assert.False(t, claimed)
	})
}

func TestSupabaseProfileRepository_ListExpired(t *testing.T) {
	logger := zap.NewNop()
	asOf := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "neq.free", r.URL.Query().Get("membership_type"))
		assert.Equal(t, "lt.2026-03-01T12:00:00Z", r.URL.Query().Get("membership_expires_at"))

		profiles := []model.Profile{
			newTestProfile("a@example.com", model.MembershipBasic),
			newTestProfile("b@example.com", model.MembershipPremium),
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(profiles)
	}))
	defer server.Close()

	repo := NewSupabaseProfileRepository(server.URL, "test-api-key", logger)
	profiles, err := repo.ListExpired(context.Background(), asOf)

	assert.NoError(t, err)
	assert.Len(t, profiles, 2)
	assert.Equal(t, "a@example.com", profiles[0].Email)
}

func TestSupabaseProfileRepository_DowngradeToFree(t *testing.T) {
	logger := zap.NewNop()
	idA := uuid.New().String()
	idB := uuid.New().String()

	t.Run("bulk downgrade", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPatch, r.Method)
			assert.Equal(t, "in.("+idA+","+idB+")", r.URL.Query().Get("id"))
			assert.Equal(t, "neq.free", r.URL.Query().Get("membership_type"))

			var body map[string]string
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "free", body["membership_type"])

			updated := []model.Profile{
				newTestProfile("a@example.com", model.MembershipFree),
				newTestProfile("b@example.com", model.MembershipFree),
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(updated)
		}))
		defer server.Close()

		repo := NewSupabaseProfileRepository(server.URL, "test-api-key", logger)
		updated, err := repo.DowngradeToFree(context.Background(), []string{idA, idB})

		assert.NoError(t, err)
		assert.Equal(t, int64(2), updated)
	})

	t.Run("empty id list short-circuits without a request", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("no request expected")
		}))
		defer server.Close()

		repo := NewSupabaseProfileRepository(server.URL, "test-api-key", logger)
		updated, err := repo.DowngradeToFree(context.Background(), nil)

		assert.NoError(t, err)
		assert.Equal(t, int64(0), updated)
	})
}
