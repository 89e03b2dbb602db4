package http

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/uaplabs/minidapps/adapters/reviews"
	"github.com/uaplabs/minidapps/adapters/store"
	"github.com/uaplabs/minidapps/adapters/tokenizer"
	"github.com/uaplabs/minidapps/core"
	"github.com/uaplabs/minidapps/service"
)

type stubChain struct {
	claimed  map[string]bool
	balances map[string]*big.Int
	users    []string

	claimCalls int
}

func (s *stubChain) HasClaimed(ctx context.Context, address string) (bool, error) {
	return s.claimed[strings.ToLower(address)], nil
}

func (s *stubChain) BalanceOf(ctx context.Context, address string) (*big.Int, error) {
	if balance, ok := s.balances[strings.ToLower(address)]; ok {
		return balance, nil
	}
	return big.NewInt(0), nil
}

func (s *stubChain) FaucetUsers(ctx context.Context) ([]string, error)  { return s.users, nil }
func (s *stubChain) FaucetAmount(ctx context.Context) (*big.Int, error) { return big.NewInt(1), nil }
func (s *stubChain) TransferLogs(ctx context.Context, address string) ([]core.TransferLog, error) {
	return nil, nil
}
func (s *stubChain) TransactionDetails(ctx context.Context, hash string) (*core.TxDetails, error) {
	return &core.TxDetails{Hash: hash, Status: core.TxStatusConfirmed}, nil
}

func (s *stubChain) Claim(ctx context.Context) (string, error) {
	s.claimCalls++
	return "0xclaimtx", nil
}
func (s *stubChain) Transfer(ctx context.Context, to string, amount *big.Int) (string, error) {
	return "0xtransfertx", nil
}
func (s *stubChain) Approve(ctx context.Context, spender string, amount *big.Int) (string, error) {
	return "0xapprovetx", nil
}

type stubPublisher struct{}

func (stubPublisher) PublishLogin(ctx context.Context, address string) error         { return nil }
func (stubPublisher) PublishClaim(ctx context.Context, address, txHash string) error { return nil }

type stubStreamer struct {
	deltas []string
}

func (s *stubStreamer) Stream(ctx context.Context, messages []core.ChatMessage, onDelta func(string) error) error {
	for _, delta := range s.deltas {
		if err := onDelta(delta); err != nil {
			return err
		}
	}
	return nil
}

type testServer struct {
	router *gin.Engine
	chain  *stubChain
	auth   *service.AuthService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	chain := &stubChain{
		claimed:  make(map[string]bool),
		balances: make(map[string]*big.Int),
	}

	authService := service.NewAuthService(
		store.NewMemoryStore(),
		tokenizer.NewJWTTokenizer([]byte("test-secret")),
		stubPublisher{},
		zap.NewNop(),
		"localhost:3001", "http://localhost:3000", 11155111,
	)
	faucetService := service.NewFaucetService(chain, chain, stubPublisher{}, zap.NewNop(),
		"0x3333333333333333333333333333333333333333", 11155111)
	chatService := service.NewChatService(&stubStreamer{deltas: []string{"Hi ", "there"}})
	reviewService := service.NewReviewService(reviews.NewMemoryStore())

	router := SetupRouter(authService, faucetService, chatService, reviewService, RouterConfig{
		Log:             zap.NewNop(),
		AllowedOrigin:   "http://localhost:3000",
		RateLimitMax:    1000,
		RateLimitWindow: time.Minute,
	})

	return &testServer{router: router, chain: chain, auth: authService}
}

func (ts *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

// signIn drives the full nonce/signature flow and returns the bearer token
// with the wallet's lower-cased address.
func (ts *testServer) signIn(t *testing.T, key *ecdsa.PrivateKey) (string, string) {
	t.Helper()

	address := crypto.PubkeyToAddress(key.PublicKey).Hex()

	w := ts.do(t, http.MethodPost, "/auth/message", "", gin.H{"address": address})
	require.Equal(t, http.StatusOK, w.Code)

	var msgResp struct {
		Message string `json:"message"`
		Nonce   string `json:"nonce"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &msgResp))
	require.Contains(t, msgResp.Message, msgResp.Nonce)

	hash := accounts.TextHash([]byte(msgResp.Message))
	sig, err := crypto.Sign(hash, key)
	require.NoError(t, err)
	sig[64] += 27

	w = ts.do(t, http.MethodPost, "/auth/signin", "", gin.H{
		"message":   msgResp.Message,
		"signature": hexutil.Encode(sig),
	})
	require.Equal(t, http.StatusOK, w.Code)

	var signInResp struct {
		Token   string `json:"token"`
		Address string `json:"address"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &signInResp))
	require.Equal(t, strings.ToLower(address), signInResp.Address)
	return signInResp.Token, signInResp.Address
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Contains(t, resp, "timestamp")
	assert.Contains(t, resp, "uptime")
}

func TestUnknownRoute(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Route not found")
}

func TestAuthMessageRejectsBadAddress(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/auth/message", "", gin.H{"address": "nope"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSignInFlowAndProtectedStatus(t *testing.T) {
	ts := newTestServer(t)

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	token, address := ts.signIn(t, key)

	ts.chain.balances[address] = big.NewInt(7)

	w := ts.do(t, http.MethodGet, "/faucet/status/"+address, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var status core.FaucetStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.False(t, status.HasClaimed)
	assert.Equal(t, "7", status.Balance)
}

func TestProtectedEndpointsRequireToken(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/faucet/claim", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = ts.do(t, http.MethodPost, "/faucet/claim", "garbage-token", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestStatusForeignAddressForbidden(t *testing.T) {
	ts := newTestServer(t)

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	token, _ := ts.signIn(t, key)

	w := ts.do(t, http.MethodGet, "/faucet/status/0x2222222222222222222222222222222222222222", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestClaimTwiceReturnsAlreadyClaimed(t *testing.T) {
	ts := newTestServer(t)

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	token, address := ts.signIn(t, key)

	w := ts.do(t, http.MethodPost, "/faucet/claim", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "0xclaimtx")

	ts.chain.claimed[address] = true

	w = ts.do(t, http.MethodPost, "/faucet/claim", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already claimed")
	assert.Equal(t, 1, ts.chain.claimCalls)
}

func TestFaucetInfoIsPublic(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/faucet/info", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Sepolia Testnet")
}

func TestChatRelayStreamsBody(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/chat", "", gin.H{
		"messages": []gin.H{{"role": "user", "content": "hello"}},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Hi there", w.Body.String())
}

func TestChatRelayValidation(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/chat", "", gin.H{"messages": []gin.H{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	long := strings.Repeat("a", core.MaxMessageContent+1)
	w = ts.do(t, http.MethodPost, "/api/chat", "", gin.H{
		"messages": []gin.H{{"role": "user", "content": long}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReviewLifecycle(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/books/book-1/reviews", "", gin.H{
		"userId": "user-1",
		"text":   "loved it",
		"rating": 5,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Reviews []core.Review `json:"reviews"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Reviews, 1)
	reviewID := resp.Reviews[0].ID

	w = ts.do(t, http.MethodPost, "/api/books/book-1/reviews/"+reviewID+"/vote", "", gin.H{"kind": "like"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Reviews[0].Likes)

	w = ts.do(t, http.MethodPost, "/api/books/book-1/reviews/missing/vote", "", gin.H{"kind": "like"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(t, http.MethodGet, "/api/books/book-1/reviews", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Reviews, 1)
}

func TestReviewSaveValidation(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/books/book-1/reviews", "", gin.H{
		"userId": "user-1",
		"text":   "no rating",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
