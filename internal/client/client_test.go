package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"zeelx/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, token string, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := New(Config{BaseURL: server.URL, Tokens: StaticToken(token)})
	require.NoError(t, err)
	return c
}

func writeEnvelope(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(env)
}

func TestNewRequiresBaseURL(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestBearerTokenAttached(t *testing.T) {
	c := newTestClient(t, "tok-123", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		data, _ := json.Marshal(map[string]*domain.User{"user": {ID: 1, Phone: "99112233"}})
		writeEnvelope(w, http.StatusOK, envelope{Success: true, Data: data})
	})

	user, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)
	assert.Equal(t, "99112233", user.Phone)
}

func TestNoTokenNoHeader(t *testing.T) {
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		data, _ := json.Marshal(domain.Session{Token: "fresh", User: &domain.User{ID: 7}})
		writeEnvelope(w, http.StatusOK, envelope{Success: true, Data: data})
	})

	session, err := c.Login(context.Background(), "99112233", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "fresh", session.Token)
	assert.Equal(t, uint(7), session.User.ID)
}

func TestServerErrorSurfacedVerbatim(t *testing.T) {
	c := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusBadRequest, envelope{Success: false, Error: "amount exceeds available loan limit"})
	})

	_, err := c.RequestApprovedLoan(context.Background(), 900_000, 30)
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok, "want *APIError, got %T", err)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "amount exceeds available loan limit", apiErr.Error())
}

func TestSuccessFalseIsAPIError(t *testing.T) {
	// Some deployments return 200 with success=false; the flag wins.
	c := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, envelope{Success: false, Message: "loan not found"})
	})

	_, err := c.Loan(context.Background(), 42)
	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, "loan not found", apiErr.Message)
}

func TestNetworkErrorFixedMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listening anymore

	c, err := New(Config{BaseURL: server.URL})
	require.NoError(t, err)

	_, err = c.Wallet(context.Background())
	require.Error(t, err)

	netErr, ok := err.(*NetworkError)
	require.True(t, ok, "want *NetworkError, got %T", err)
	assert.Equal(t, NetworkErrorMessage, netErr.Error())
	assert.Error(t, netErr.Unwrap())
}

func TestTimeoutIsNetworkError(t *testing.T) {
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		writeEnvelope(w, http.StatusOK, envelope{Success: true})
	})
	c.httpClient.Timeout = 20 * time.Millisecond

	_, err := c.Wallet(context.Background())
	var netErr *NetworkError
	assert.ErrorAs(t, err, &netErr)
}

func TestIsUnauthorized(t *testing.T) {
	c := newTestClient(t, "expired", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, envelope{Success: false, Error: "Access token expired"})
	})

	_, err := c.Me(context.Background())
	assert.True(t, IsUnauthorized(err))
	assert.False(t, IsUnauthorized(nil))
	assert.False(t, IsUnauthorized(&NetworkError{}))
}

func TestQueryParameters(t *testing.T) {
	c := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/loans/my-loans", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "active", r.URL.Query().Get("status"))

		data, _ := json.Marshal(LoanPage{
			Loans: []domain.Loan{{ID: 3, Status: domain.LoanActive}},
			Stats: &domain.LoanStats{TotalLoans: 1, ActiveLoans: 1},
		})
		writeEnvelope(w, http.StatusOK, envelope{Success: true, Data: data})
	})

	page, err := c.MyLoans(context.Background(), 2, domain.LoanActive)
	require.NoError(t, err)
	require.Len(t, page.Loans, 1)
	assert.Equal(t, 1, page.Stats.ActiveLoans)
}

func TestPayLoanUnwrapsLoanAndWallet(t *testing.T) {
	c := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/loans/5/pay", r.URL.Path)

		var body amountRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, int64(103_200), body.Amount)

		data, _ := json.Marshal(loanData{
			Loan:   &domain.Loan{ID: 5, Status: domain.LoanPaid, RemainingAmount: 0},
			Wallet: &domain.Wallet{Balance: 6_800},
		})
		writeEnvelope(w, http.StatusOK, envelope{Success: true, Data: data})
	})

	loan, wallet, err := c.PayLoan(context.Background(), 5, 103_200)
	require.NoError(t, err)
	assert.Equal(t, domain.LoanPaid, loan.Status)
	assert.Equal(t, int64(6_800), wallet.Balance)
}
