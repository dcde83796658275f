package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	domainErrors "github.com/summitcoaching/membership-service/internal/domain/errors"
	"github.com/summitcoaching/membership-service/internal/domain/model"
	domainRepo "github.com/summitcoaching/membership-service/internal/domain/repository"
)

// SupabaseProfileRepository implements the profile store over the
// Supabase REST API (PostgREST). It expects a service_role key since the
// sweep reads and writes rows across all users.
type SupabaseProfileRepository struct {
	client  *http.Client
	baseURL string
	apiKey  string
	logger  *zap.Logger
}

// NewSupabaseProfileRepository creates a profile store backed by the
// Supabase REST API.
func NewSupabaseProfileRepository(baseURL, apiKey string, logger *zap.Logger) domainRepo.ProfileRepository {
	return &SupabaseProfileRepository{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		logger:  logger,
	}
}

func (r *SupabaseProfileRepository) newRequest(ctx context.Context, method string, query url.Values, body interface{}) (*http.Request, error) {
	endpoint := fmt.Sprintf("%s/rest/v1/profiles?%s", r.baseURL, query.Encode())

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("apikey", r.apiKey)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", r.apiKey))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")

	return req, nil
}

// do executes the request and decodes the returned representation, which
// PostgREST sends as a JSON array for both reads and filtered writes.
func (r *SupabaseProfileRepository) do(req *http.Request, op string) ([]model.Profile, error) {
	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Error("Supabase request failed",
			zap.String("op", op),
			zap.String("url", req.URL.String()),
			zap.Error(err))
		return nil, domainErrors.NewStoreError(op, fmt.Errorf("http request failed: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errorBody, _ := io.ReadAll(resp.Body)
		r.logger.Warn("Supabase API returned non-2xx status",
			zap.String("op", op),
			zap.Int("status_code", resp.StatusCode),
			zap.ByteString("response_body", errorBody))

		if resp.StatusCode == http.StatusUnauthorized {
			return nil, domainErrors.NewStoreError(op,
				fmt.Errorf("unauthorized access to Supabase API - check API key permissions"))
		}
		return nil, domainErrors.NewStoreError(op,
			fmt.Errorf("supabase API error: status %d", resp.StatusCode))
	}

	var profiles []model.Profile
	if err := json.NewDecoder(resp.Body).Decode(&profiles); err != nil {
		return nil, domainErrors.NewStoreError(op, fmt.Errorf("failed to decode response: %w", err))
	}
	return profiles, nil
}

func (r *SupabaseProfileRepository) GetByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	params := url.Values{}
	params.Add("id", fmt.Sprintf("eq.%s", userID))
	params.Add("select", "*")
	params.Add("limit", "1")

	req, err := r.newRequest(ctx, http.MethodGet, params, nil)
	if err != nil {
		return nil, domainErrors.NewStoreError("get profile", err)
	}

	profiles, err := r.do(req, "get profile")
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, nil
	}
	return &profiles[0], nil
}

func (r *SupabaseProfileRepository) ClaimStripeCustomerID(ctx context.Context, userID, customerID string) (bool, error) {
	// The filter makes the PATCH conditional: a row that already carries
	// a customer id matches nothing and the returned representation is
	// empty, which signals a lost claim. Both NULL and the empty string
	// count as unclaimed, matching the postgres backend.
	params := url.Values{}
	params.Add("id", fmt.Sprintf("eq.%s", userID))
	params.Add("or", "(stripe_customer_id.is.null,stripe_customer_id.eq.)")

	body := map[string]string{"stripe_customer_id": customerID}
	req, err := r.newRequest(ctx, http.MethodPatch, params, body)
	if err != nil {
		return false, domainErrors.NewStoreError("claim stripe customer id", err)
	}

	updated, err := r.do(req, "claim stripe customer id")
	if err != nil {
		return false, err
	}
	return len(updated) > 0, nil
}

func (r *SupabaseProfileRepository) ListExpired(ctx context.Context, asOf time.Time) ([]model.Profile, error) {
	params := url.Values{}
	params.Add("membership_type", "neq.free")
	params.Add("membership_expires_at", fmt.Sprintf("lt.%s", asOf.UTC().Format(time.RFC3339)))
	params.Add("select", "*")

	req, err := r.newRequest(ctx, http.MethodGet, params, nil)
	if err != nil {
		return nil, domainErrors.NewStoreError("list expired profiles", err)
	}

	return r.do(req, "list expired profiles")
}

func (r *SupabaseProfileRepository) DowngradeToFree(ctx context.Context, userIDs []string) (int64, error) {
	if len(userIDs) == 0 {
		return 0, nil
	}

	params := url.Values{}
	params.Add("id", fmt.Sprintf("in.(%s)", strings.Join(userIDs, ",")))
	params.Add("membership_type", "neq.free")

	body := map[string]string{"membership_type": string(model.MembershipFree)}
	req, err := r.newRequest(ctx, http.MethodPatch, params, body)
	if err != nil {
		return 0, domainErrors.NewStoreError("downgrade profiles", err)
	}

	updated, err := r.do(req, "downgrade profiles")
	if err != nil {
		return 0, err
	}

	r.logger.Info("Downgraded expired memberships",
		zap.Int("requested", len(userIDs)),
		zap.Int("updated", len(updated)))

	return int64(len(updated)), nil
}
