package service

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/uaplabs/minidapps/core"
)

const (
	testCaller   = "0x1111111111111111111111111111111111111111"
	testOther    = "0x2222222222222222222222222222222222222222"
	testContract = "0x3333333333333333333333333333333333333333"
)

type fakeChain struct {
	claimed  map[string]bool
	balances map[string]*big.Int
	users    []string
	amount   *big.Int
	logs     []core.TransferLog
	details  *core.TxDetails

	claimCalls    int
	transferCalls int
	approveCalls  int
	lastAmount    *big.Int
	lastTo        string
}

func newFakeChain() *fakeChain {
	return &fakeChain{
		claimed:  make(map[string]bool),
		balances: make(map[string]*big.Int),
		amount:   new(big.Int).Mul(big.NewInt(1_000_000), exp18()),
	}
}

func exp18() *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
}

func (f *fakeChain) HasClaimed(ctx context.Context, address string) (bool, error) {
	return f.claimed[address], nil
}

func (f *fakeChain) BalanceOf(ctx context.Context, address string) (*big.Int, error) {
	if balance, ok := f.balances[address]; ok {
		return balance, nil
	}
	return big.NewInt(0), nil
}

func (f *fakeChain) FaucetUsers(ctx context.Context) ([]string, error)     { return f.users, nil }
func (f *fakeChain) FaucetAmount(ctx context.Context) (*big.Int, error)    { return f.amount, nil }
func (f *fakeChain) TransferLogs(ctx context.Context, address string) ([]core.TransferLog, error) {
	return f.logs, nil
}
func (f *fakeChain) TransactionDetails(ctx context.Context, hash string) (*core.TxDetails, error) {
	return f.details, nil
}

func (f *fakeChain) Claim(ctx context.Context) (string, error) {
	f.claimCalls++
	return "0xclaimtx", nil
}

func (f *fakeChain) Transfer(ctx context.Context, to string, amount *big.Int) (string, error) {
	f.transferCalls++
	f.lastTo = to
	f.lastAmount = amount
	return "0xtransfertx", nil
}

func (f *fakeChain) Approve(ctx context.Context, spender string, amount *big.Int) (string, error) {
	f.approveCalls++
	f.lastTo = spender
	f.lastAmount = amount
	return "0xapprovetx", nil
}

func newTestFaucetService(chain *fakeChain) *FaucetService {
	return NewFaucetService(chain, chain, recordingPublisher(), zap.NewNop(), testContract, 11155111)
}

type nopPublisher struct{}

func (nopPublisher) PublishLogin(ctx context.Context, address string) error         { return nil }
func (nopPublisher) PublishClaim(ctx context.Context, address, txHash string) error { return nil }

func recordingPublisher() nopPublisher { return nopPublisher{} }

func TestFaucetService_StatusOwnAddress(t *testing.T) {
	chain := newFakeChain()
	chain.claimed[testCaller] = true
	chain.balances[testCaller] = big.NewInt(42)
	chain.users = []string{testCaller}
	svc := newTestFaucetService(chain)

	status, err := svc.Status(context.Background(), testCaller, testCaller)
	require.NoError(t, err)
	assert.True(t, status.HasClaimed)
	assert.Equal(t, "42", status.Balance)
	assert.Equal(t, []string{testCaller}, status.Users)
}

func TestFaucetService_StatusForeignAddressForbidden(t *testing.T) {
	svc := newTestFaucetService(newFakeChain())

	_, err := svc.Status(context.Background(), testCaller, testOther)
	assert.ErrorIs(t, err, core.ErrForbidden)
}

func TestFaucetService_StatusCaseInsensitiveOwnership(t *testing.T) {
	svc := newTestFaucetService(newFakeChain())

	caller := "0xabcdef0123456789abcdef0123456789abcdef01"
	mixed := "0xAbCdEf0123456789aBcDeF0123456789AbCdEf01"

	_, err := svc.Status(context.Background(), caller, mixed)
	assert.NoError(t, err)

	foreign := "0xFfFfFfFfFfFfFfFfFfFfFfFfFfFfFfFfFfFfFfFf"
	_, err = svc.Status(context.Background(), caller, foreign)
	assert.ErrorIs(t, err, core.ErrForbidden)
}

func TestFaucetService_ClaimShortCircuitsWhenAlreadyClaimed(t *testing.T) {
	chain := newFakeChain()
	svc := newTestFaucetService(chain)

	txHash, err := svc.Claim(context.Background(), testCaller)
	require.NoError(t, err)
	assert.Equal(t, "0xclaimtx", txHash)
	assert.Equal(t, 1, chain.claimCalls)

	chain.claimed[testCaller] = true

	_, err = svc.Claim(context.Background(), testCaller)
	assert.ErrorIs(t, err, core.ErrAlreadyClaimed)
	assert.Equal(t, 1, chain.claimCalls, "no second transaction may be submitted")
}

func TestFaucetService_TransferScalesAmount(t *testing.T) {
	chain := newFakeChain()
	chain.balances[testCaller] = new(big.Int).Mul(big.NewInt(10), exp18())
	svc := newTestFaucetService(chain)

	txHash, err := svc.Transfer(context.Background(), testCaller, testOther, "1.5")
	require.NoError(t, err)
	assert.Equal(t, "0xtransfertx", txHash)

	want, _ := new(big.Int).SetString("1500000000000000000", 10)
	assert.Equal(t, 0, chain.lastAmount.Cmp(want))
	assert.Equal(t, testOther, chain.lastTo)
}

func TestFaucetService_TransferInsufficientBalance(t *testing.T) {
	chain := newFakeChain()
	chain.balances[testCaller] = big.NewInt(1) // one base unit
	svc := newTestFaucetService(chain)

	_, err := svc.Transfer(context.Background(), testCaller, testOther, "2")
	assert.ErrorIs(t, err, core.ErrInsufficientBalance)
	assert.Zero(t, chain.transferCalls, "no transaction may be submitted")
}

func TestFaucetService_TransferValidation(t *testing.T) {
	svc := newTestFaucetService(newFakeChain())

	tests := []struct {
		name   string
		to     string
		amount string
	}{
		{"bad recipient", "nope", "1"},
		{"zero amount", testOther, "0"},
		{"negative amount", testOther, "-1"},
		{"non-numeric amount", testOther, "abc"},
		{"too many decimals", testOther, "0.0000000000000000001"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Transfer(context.Background(), testCaller, tt.to, tt.amount)
			var validationErr *core.ValidationError
			assert.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestFaucetService_ApproveSkipsBalanceCheck(t *testing.T) {
	chain := newFakeChain() // caller has zero balance
	svc := newTestFaucetService(chain)

	txHash, err := svc.Approve(context.Background(), testOther, "5")
	require.NoError(t, err)
	assert.Equal(t, "0xapprovetx", txHash)
	assert.Equal(t, 1, chain.approveCalls)
}

func TestFaucetService_HistoryDefaultsToCaller(t *testing.T) {
	chain := newFakeChain()
	chain.logs = []core.TransferLog{{TxHash: "0xabc", From: testCaller, To: testOther, Value: "1"}}
	svc := newTestFaucetService(chain)

	logs, err := svc.History(context.Background(), testCaller, "")
	require.NoError(t, err)
	assert.Len(t, logs, 1)

	_, err = svc.History(context.Background(), testCaller, testOther)
	assert.ErrorIs(t, err, core.ErrForbidden)
}

func TestFaucetService_TransactionDetailsValidatesHash(t *testing.T) {
	chain := newFakeChain()
	chain.details = &core.TxDetails{Hash: "0xdeadbeef", Status: core.TxStatusConfirmed}
	svc := newTestFaucetService(chain)

	_, err := svc.TransactionDetails(context.Background(), "nope")
	var validationErr *core.ValidationError
	assert.ErrorAs(t, err, &validationErr)

	details, err := svc.TransactionDetails(context.Background(),
		"0x00000000000000000000000000000000000000000000000000000000deadbeef")
	require.NoError(t, err)
	assert.Equal(t, core.TxStatusConfirmed, details.Status)
}

func TestFaucetService_Info(t *testing.T) {
	chain := newFakeChain()
	chain.users = []string{testCaller, testOther}
	svc := newTestFaucetService(chain)

	info, err := svc.Info(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testContract, info.ContractAddress)
	assert.Equal(t, 2, info.TotalUsers)
	assert.Equal(t, "Sepolia Testnet", info.Network)
	assert.Equal(t, int64(11155111), info.ChainID)
}
