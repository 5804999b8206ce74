// Package rpc provides JSON-RPC server implementation.
package rpc

import (
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/mintlab/dropforge-go/pkg/backend"
	"github.com/mintlab/dropforge-go/pkg/mint"
	"github.com/mintlab/dropforge-go/pkg/phase"
	"github.com/mintlab/dropforge-go/pkg/quota"
)

// JSON-RPC error codes.
const (
	ErrCodeParseError     = -32700
	ErrCodeInvalidRequest = -32600
	ErrCodeMethodNotFound = -32601
	ErrCodeInvalidParams  = -32602
	ErrCodeInternal       = -32603

	// ErrCodeMintRejected reports a mint pipeline failure (closed phase,
	// bad proof, quota or supply violation, insufficient payment).
	ErrCodeMintRejected = -32000
)

// Version information.
const (
	ClientVersion = "dropforge/v0.1.0"
)

// Request represents a JSON-RPC request.
type Request struct {
	Jsonrpc string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

// Response represents a JSON-RPC response.
type Response struct {
	Jsonrpc string       `json:"jsonrpc"`
	ID      interface{}  `json:"id"`
	Result  interface{}  `json:"result,omitempty"`
	Error   *ErrorObject `json:"error,omitempty"`
}

// ErrorObject represents a JSON-RPC error.
type ErrorObject struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Server exposes the mint engine over JSON-RPC.
type Server struct {
	engine *backend.Engine
}

// NewServer creates a new RPC server around an engine.
func NewServer(engine *backend.Engine) *Server {
	return &Server{engine: engine}
}

// ServeHTTP handles HTTP requests.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeError(w, nil, ErrCodeParseError, "Failed to read request body")
		return
	}

	var req Request
	if err := json.Unmarshal(body, &req); err != nil {
		s.writeError(w, nil, ErrCodeParseError, "Parse error")
		return
	}

	result, rpcErr := s.handleMethod(req.Method, req.Params)
	if rpcErr != nil {
		s.writeError(w, req.ID, rpcErr.Code, rpcErr.Message)
		return
	}

	// Handle nil result specially to output "null" instead of omitting
	var resp interface{}
	if result == nil {
		resp = struct {
			Jsonrpc string      `json:"jsonrpc"`
			ID      interface{} `json:"id"`
			Result  interface{} `json:"result"`
		}{
			Jsonrpc: "2.0",
			ID:      req.ID,
			Result:  nil,
		}
	} else {
		resp = Response{
			Jsonrpc: "2.0",
			ID:      req.ID,
			Result:  result,
		}
	}

	json.NewEncoder(w).Encode(resp)
}

func (s *Server) writeError(w http.ResponseWriter, id interface{}, code int, message string) {
	resp := Response{
		Jsonrpc: "2.0",
		ID:      id,
		Error: &ErrorObject{
			Code:    code,
			Message: message,
		},
	}
	json.NewEncoder(w).Encode(resp)
}

// handleMethod dispatches a JSON-RPC method call.
func (s *Server) handleMethod(method string, params json.RawMessage) (interface{}, *ErrorObject) {
	switch method {
	// web3_* methods
	case "web3_clientVersion":
		return ClientVersion, nil

	// drop_* query methods
	case "drop_name":
		return s.engine.Controller().Name(), nil
	case "drop_symbol":
		return s.engine.Controller().Symbol(), nil
	case "drop_owner":
		return s.engine.Controller().Owner().Hex(), nil
	case "drop_accounts":
		return s.dropAccounts()
	case "drop_totalSupply":
		return hexutil.EncodeUint64(s.engine.Controller().TotalSupply()), nil
	case "drop_nextTokenId":
		return hexutil.EncodeUint64(s.engine.Controller().NextTokenID()), nil
	case "drop_revealed":
		return s.engine.Controller().Revealed(), nil
	case "drop_publicMintOpen":
		return s.engine.Controller().PublicMintOpen(), nil
	case "drop_tokenURI":
		return s.dropTokenURI(params)
	case "drop_ownerOf":
		return s.dropOwnerOf(params)
	case "drop_balanceOf":
		return s.dropBalanceOf(params)
	case "drop_quota":
		return s.dropQuota(params)
	case "drop_root":
		return s.dropRoot(params)
	case "drop_royaltyInfo":
		return s.dropRoyaltyInfo(params)

	// drop_* mint methods
	case "drop_devMint":
		return s.dropDevMint(params)
	case "drop_presaleMint":
		return s.dropPresaleMint(params)
	case "drop_publicMint":
		return s.dropPublicMint(params)
	case "drop_ownerMint":
		return s.dropOwnerMint(params)
	case "drop_burn":
		return s.dropBurn(params)

	// admin_* methods
	case "admin_setNameAndSymbol":
		return s.adminSetNameAndSymbol(params)
	case "admin_setBaseURI":
		return s.adminSetBaseURI(params)
	case "admin_setMysteryBoxURI":
		return s.adminSetMysteryBoxURI(params)
	case "admin_setRevealed":
		return s.adminSetRevealed(params)
	case "admin_setPublicMint":
		return s.adminSetPublicMint(params)
	case "admin_setPublicMintPrice":
		return s.adminSetPublicMintPrice(params)
	case "admin_setRoot":
		return s.adminSetRoot(params)
	case "admin_setNextTokenId":
		return s.adminSetNextTokenId(params)
	case "admin_setDevMintWindow":
		return s.adminSetDevMintWindow(params)
	case "admin_setTierWindow":
		return s.adminSetTierWindow(params)
	case "admin_setDefaultRoyalty":
		return s.adminSetDefaultRoyalty(params)
	case "admin_setTokenRoyalty":
		return s.adminSetTokenRoyalty(params)
	case "admin_resetTokenRoyalty":
		return s.adminResetTokenRoyalty(params)
	case "admin_withdraw":
		return s.adminWithdraw(params)
	case "admin_markContract":
		return s.adminMarkContract(params)

	default:
		return nil, &ErrorObject{Code: ErrCodeMethodNotFound, Message: "Method not found"}
	}
}

// rootKinds maps wire names to allowlist roots.
var rootKinds = map[string]mint.RootKind{
	"dev":      mint.RootDev,
	"fastpass": mint.RootFastPass,
	"presale":  mint.RootPresale,
	"public":   mint.RootPublic,
}

// quotaFamilies maps wire names to quota families.
var quotaFamilies = map[string]quota.Family{
	"dev":     quota.FamilyDev,
	"presale": quota.FamilyPresale,
	"public":  quota.FamilyPublic,
}

func invalidParams(message string) *ErrorObject {
	return &ErrorObject{Code: ErrCodeInvalidParams, Message: message}
}

func mintRejected(err error) *ErrorObject {
	return &ErrorObject{Code: ErrCodeMintRejected, Message: err.Error()}
}

func parseArgs(params json.RawMessage, min int) ([]interface{}, *ErrorObject) {
	var args []interface{}
	if err := json.Unmarshal(params, &args); err != nil || len(args) < min {
		return nil, invalidParams("Invalid params")
	}
	return args, nil
}

func argAddress(args []interface{}, i int) (common.Address, *ErrorObject) {
	str, ok := args[i].(string)
	if !ok || !common.IsHexAddress(str) {
		return common.Address{}, invalidParams("Invalid address")
	}
	return common.HexToAddress(str), nil
}

func argUint64(args []interface{}, i int) (uint64, *ErrorObject) {
	str, ok := args[i].(string)
	if !ok {
		return 0, invalidParams("Invalid quantity")
	}
	v, err := hexutil.DecodeUint64(str)
	if err != nil {
		return 0, invalidParams("Invalid quantity")
	}
	return v, nil
}

func argBig(args []interface{}, i int) (*big.Int, *ErrorObject) {
	str, ok := args[i].(string)
	if !ok {
		return nil, invalidParams("Invalid value")
	}
	v, err := hexutil.DecodeBig(str)
	if err != nil {
		return nil, invalidParams("Invalid value")
	}
	return v, nil
}

func argProof(args []interface{}, i int) ([]common.Hash, *ErrorObject) {
	raw, ok := args[i].([]interface{})
	if !ok {
		return nil, invalidParams("Invalid proof")
	}
	proof := make([]common.Hash, 0, len(raw))
	for _, node := range raw {
		str, ok := node.(string)
		if !ok {
			return nil, invalidParams("Invalid proof")
		}
		proof = append(proof, common.HexToHash(str))
	}
	return proof, nil
}

// drop_accounts returns the derived dev accounts.
func (s *Server) dropAccounts() (interface{}, *ErrorObject) {
	accounts := s.engine.Accounts()
	out := make([]string, 0, len(accounts))
	for _, acc := range accounts {
		out = append(out, acc.Address.Hex())
	}
	return out, nil
}

// drop_tokenURI returns the metadata URI of a token.
func (s *Server) dropTokenURI(params json.RawMessage) (interface{}, *ErrorObject) {
	args, rpcErr := parseArgs(params, 1)
	if rpcErr != nil {
		return nil, rpcErr
	}
	id, rpcErr := argUint64(args, 0)
	if rpcErr != nil {
		return nil, rpcErr
	}
	uri, err := s.engine.Controller().TokenURI(id)
	if err != nil {
		return nil, mintRejected(err)
	}
	return uri, nil
}

// drop_ownerOf returns the owner of a token.
func (s *Server) dropOwnerOf(params json.RawMessage) (interface{}, *ErrorObject) {
	args, rpcErr := parseArgs(params, 1)
	if rpcErr != nil {
		return nil, rpcErr
	}
	id, rpcErr := argUint64(args, 0)
	if rpcErr != nil {
		return nil, rpcErr
	}
	owner, err := s.engine.Tokens().OwnerOf(id)
	if err != nil {
		return nil, mintRejected(err)
	}
	return owner.Hex(), nil
}

// drop_balanceOf returns the token count held by a wallet.
func (s *Server) dropBalanceOf(params json.RawMessage) (interface{}, *ErrorObject) {
	args, rpcErr := parseArgs(params, 1)
	if rpcErr != nil {
		return nil, rpcErr
	}
	addr, rpcErr := argAddress(args, 0)
	if rpcErr != nil {
		return nil, rpcErr
	}
	return hexutil.EncodeUint64(s.engine.Tokens().BalanceOf(addr)), nil
}

// drop_quota returns how many tokens a wallet has minted in a family.
func (s *Server) dropQuota(params json.RawMessage) (interface{}, *ErrorObject) {
	args, rpcErr := parseArgs(params, 2)
	if rpcErr != nil {
		return nil, rpcErr
	}
	addr, rpcErr := argAddress(args, 0)
	if rpcErr != nil {
		return nil, rpcErr
	}
	name, ok := args[1].(string)
	if !ok {
		return nil, invalidParams("Invalid quota family")
	}
	family, ok := quotaFamilies[name]
	if !ok {
		return nil, invalidParams("Invalid quota family")
	}
	return hexutil.EncodeUint64(s.engine.Controller().Quota(addr, family)), nil
}

// drop_root returns the configured allowlist root.
func (s *Server) dropRoot(params json.RawMessage) (interface{}, *ErrorObject) {
	args, rpcErr := parseArgs(params, 1)
	if rpcErr != nil {
		return nil, rpcErr
	}
	name, ok := args[0].(string)
	if !ok {
		return nil, invalidParams("Invalid root kind")
	}
	kind, ok := rootKinds[name]
	if !ok {
		return nil, invalidParams("Invalid root kind")
	}
	return s.engine.Controller().Root(kind).Hex(), nil
}

// drop_royaltyInfo returns the royalty receiver and amount for a sale.
func (s *Server) dropRoyaltyInfo(params json.RawMessage) (interface{}, *ErrorObject) {
	args, rpcErr := parseArgs(params, 2)
	if rpcErr != nil {
		return nil, rpcErr
	}
	id, rpcErr := argUint64(args, 0)
	if rpcErr != nil {
		return nil, rpcErr
	}
	salePrice, rpcErr := argBig(args, 1)
	if rpcErr != nil {
		return nil, rpcErr
	}
	receiver, amount := s.engine.Controller().RoyaltyInfo(id, salePrice)
	return map[string]interface{}{
		"receiver": receiver.Hex(),
		"amount":   hexutil.EncodeBig(amount),
	}, nil
}

// drop_devMint mints from the dev allocation.
func (s *Server) dropDevMint(params json.RawMessage) (interface{}, *ErrorObject) {
	return s.cursorMint(params, s.engine.Controller().DevMint)
}

// drop_presaleMint mints through the active tier window.
func (s *Server) dropPresaleMint(params json.RawMessage) (interface{}, *ErrorObject) {
	return s.cursorMint(params, s.engine.Controller().PresaleMint)
}

func (s *Server) cursorMint(
	params json.RawMessage,
	fn func(caller, to common.Address, qty uint64, value *big.Int, proof []common.Hash) ([]uint64, error),
) (interface{}, *ErrorObject) {
	args, rpcErr := parseArgs(params, 5)
	if rpcErr != nil {
		return nil, rpcErr
	}
	caller, rpcErr := argAddress(args, 0)
	if rpcErr != nil {
		return nil, rpcErr
	}
	to, rpcErr := argAddress(args, 1)
	if rpcErr != nil {
		return nil, rpcErr
	}
	qty, rpcErr := argUint64(args, 2)
	if rpcErr != nil {
		return nil, rpcErr
	}
	value, rpcErr := argBig(args, 3)
	if rpcErr != nil {
		return nil, rpcErr
	}
	proof, rpcErr := argProof(args, 4)
	if rpcErr != nil {
		return nil, rpcErr
	}

	ids, err := fn(caller, to, qty, value, proof)
	if err != nil {
		return nil, mintRejected(err)
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, hexutil.EncodeUint64(id))
	}
	return out, nil
}

// drop_publicMint mints a caller-chosen token id against the public allowlist.
func (s *Server) dropPublicMint(params json.RawMessage) (interface{}, *ErrorObject) {
	args, rpcErr := parseArgs(params, 5)
	if rpcErr != nil {
		return nil, rpcErr
	}
	caller, rpcErr := argAddress(args, 0)
	if rpcErr != nil {
		return nil, rpcErr
	}
	to, rpcErr := argAddress(args, 1)
	if rpcErr != nil {
		return nil, rpcErr
	}
	tokenID, rpcErr := argUint64(args, 2)
	if rpcErr != nil {
		return nil, rpcErr
	}
	value, rpcErr := argBig(args, 3)
	if rpcErr != nil {
		return nil, rpcErr
	}
	proof, rpcErr := argProof(args, 4)
	if rpcErr != nil {
		return nil, rpcErr
	}

	if err := s.engine.Controller().PublicMint(caller, to, tokenID, value, proof); err != nil {
		return nil, mintRejected(err)
	}
	return hexutil.EncodeUint64(tokenID), nil
}

// drop_ownerMint mints a token directly, bypassing sale checks.
func (s *Server) dropOwnerMint(params json.RawMessage) (interface{}, *ErrorObject) {
	args, rpcErr := parseArgs(params, 3)
	if rpcErr != nil {
		return nil, rpcErr
	}
	caller, rpcErr := argAddress(args, 0)
	if rpcErr != nil {
		return nil, rpcErr
	}
	to, rpcErr := argAddress(args, 1)
	if rpcErr != nil {
		return nil, rpcErr
	}
	id, rpcErr := argUint64(args, 2)
	if rpcErr != nil {
		return nil, rpcErr
	}
	if err := s.engine.Controller().OwnerMint(caller, to, id); err != nil {
		return nil, mintRejected(err)
	}
	return hexutil.EncodeUint64(id), nil
}

// drop_burn destroys a token owned or approved by the caller.
func (s *Server) dropBurn(params json.RawMessage) (interface{}, *ErrorObject) {
	args, rpcErr := parseArgs(params, 2)
	if rpcErr != nil {
		return nil, rpcErr
	}
	caller, rpcErr := argAddress(args, 0)
	if rpcErr != nil {
		return nil, rpcErr
	}
	id, rpcErr := argUint64(args, 1)
	if rpcErr != nil {
		return nil, rpcErr
	}
	if err := s.engine.Controller().Burn(caller, id); err != nil {
		return nil, mintRejected(err)
	}
	return true, nil
}

// admin_setNameAndSymbol updates the collection name and symbol.
func (s *Server) adminSetNameAndSymbol(params json.RawMessage) (interface{}, *ErrorObject) {
	args, rpcErr := parseArgs(params, 3)
	if rpcErr != nil {
		return nil, rpcErr
	}
	caller, rpcErr := argAddress(args, 0)
	if rpcErr != nil {
		return nil, rpcErr
	}
	name, ok := args[1].(string)
	if !ok {
		return nil, invalidParams("Invalid name")
	}
	symbol, ok := args[2].(string)
	if !ok {
		return nil, invalidParams("Invalid symbol")
	}
	if err := s.engine.Controller().SetNameAndSymbol(caller, name, symbol); err != nil {
		return nil, mintRejected(err)
	}
	return true, nil
}

func (s *Server) adminSetBaseURI(params json.RawMessage) (interface{}, *ErrorObject) {
	return s.adminSetString(params, s.engine.Controller().SetBaseURI)
}

func (s *Server) adminSetMysteryBoxURI(params json.RawMessage) (interface{}, *ErrorObject) {
	return s.adminSetString(params, s.engine.Controller().SetMysteryBoxURI)
}

func (s *Server) adminSetString(
	params json.RawMessage,
	fn func(caller common.Address, value string) error,
) (interface{}, *ErrorObject) {
	args, rpcErr := parseArgs(params, 2)
	if rpcErr != nil {
		return nil, rpcErr
	}
	caller, rpcErr := argAddress(args, 0)
	if rpcErr != nil {
		return nil, rpcErr
	}
	value, ok := args[1].(string)
	if !ok {
		return nil, invalidParams("Invalid params")
	}
	if err := fn(caller, value); err != nil {
		return nil, mintRejected(err)
	}
	return true, nil
}

func (s *Server) adminSetRevealed(params json.RawMessage) (interface{}, *ErrorObject) {
	return s.adminSetBool(params, s.engine.Controller().SetRevealed)
}

func (s *Server) adminSetPublicMint(params json.RawMessage) (interface{}, *ErrorObject) {
	return s.adminSetBool(params, s.engine.Controller().SetPublicMint)
}

func (s *Server) adminSetBool(
	params json.RawMessage,
	fn func(caller common.Address, value bool) error,
) (interface{}, *ErrorObject) {
	args, rpcErr := parseArgs(params, 2)
	if rpcErr != nil {
		return nil, rpcErr
	}
	caller, rpcErr := argAddress(args, 0)
	if rpcErr != nil {
		return nil, rpcErr
	}
	value, ok := args[1].(bool)
	if !ok {
		return nil, invalidParams("Invalid params")
	}
	if err := fn(caller, value); err != nil {
		return nil, mintRejected(err)
	}
	return true, nil
}

// admin_setPublicMintPrice updates the public sale price.
func (s *Server) adminSetPublicMintPrice(params json.RawMessage) (interface{}, *ErrorObject) {
	args, rpcErr := parseArgs(params, 2)
	if rpcErr != nil {
		return nil, rpcErr
	}
	caller, rpcErr := argAddress(args, 0)
	if rpcErr != nil {
		return nil, rpcErr
	}
	price, rpcErr := argBig(args, 1)
	if rpcErr != nil {
		return nil, rpcErr
	}
	if err := s.engine.Controller().SetPublicMintPrice(caller, price); err != nil {
		return nil, mintRejected(err)
	}
	return true, nil
}

// admin_setRoot replaces an allowlist merkle root.
func (s *Server) adminSetRoot(params json.RawMessage) (interface{}, *ErrorObject) {
	args, rpcErr := parseArgs(params, 3)
	if rpcErr != nil {
		return nil, rpcErr
	}
	caller, rpcErr := argAddress(args, 0)
	if rpcErr != nil {
		return nil, rpcErr
	}
	name, ok := args[1].(string)
	if !ok {
		return nil, invalidParams("Invalid root kind")
	}
	kind, ok := rootKinds[name]
	if !ok {
		return nil, invalidParams("Invalid root kind")
	}
	rootStr, ok := args[2].(string)
	if !ok {
		return nil, invalidParams("Invalid root")
	}
	if err := s.engine.Controller().SetRoot(caller, kind, common.HexToHash(rootStr)); err != nil {
		return nil, mintRejected(err)
	}
	return true, nil
}

// admin_setNextTokenId repositions the sequential mint cursor.
func (s *Server) adminSetNextTokenId(params json.RawMessage) (interface{}, *ErrorObject) {
	args, rpcErr := parseArgs(params, 2)
	if rpcErr != nil {
		return nil, rpcErr
	}
	caller, rpcErr := argAddress(args, 0)
	if rpcErr != nil {
		return nil, rpcErr
	}
	id, rpcErr := argUint64(args, 1)
	if rpcErr != nil {
		return nil, rpcErr
	}
	if err := s.engine.Controller().SetNextTokenID(caller, id); err != nil {
		return nil, mintRejected(err)
	}
	return true, nil
}

// windowArgs is the wire form of a phase window. Start times are unix
// seconds, prices are hex-encoded wei.
type windowArgs struct {
	Stages []stageArgs  `json:"stages"`
	Price  *hexutil.Big `json:"price"`
}

type stageArgs struct {
	Start int64  `json:"start"`
	Cap   uint64 `json:"cap"`
}

type devWindowArgs struct {
	Start int64        `json:"start"`
	Cap   uint64       `json:"cap"`
	Price *hexutil.Big `json:"price"`
}

// admin_setDevMintWindow replaces the dev phase window.
func (s *Server) adminSetDevMintWindow(params json.RawMessage) (interface{}, *ErrorObject) {
	var raw []json.RawMessage
	if err := json.Unmarshal(params, &raw); err != nil || len(raw) < 2 {
		return nil, invalidParams("Invalid params")
	}
	var callerStr string
	if err := json.Unmarshal(raw[0], &callerStr); err != nil || !common.IsHexAddress(callerStr) {
		return nil, invalidParams("Invalid address")
	}
	var w devWindowArgs
	if err := json.Unmarshal(raw[1], &w); err != nil || w.Price == nil {
		return nil, invalidParams("Invalid window")
	}
	err := s.engine.Controller().SetDevMintWindow(common.HexToAddress(callerStr), phase.DevWindow{
		Start: time.Unix(w.Start, 0).UTC(),
		Cap:   w.Cap,
		Price: w.Price.ToInt(),
	})
	if err != nil {
		return nil, mintRejected(err)
	}
	return true, nil
}

var tierNames = map[string]phase.Tier{
	"earlybird": phase.TierEarlybird,
	"private":   phase.TierPrivate,
	"community": phase.TierCommunity,
}

// admin_setTierWindow replaces one tier's stage schedule.
func (s *Server) adminSetTierWindow(params json.RawMessage) (interface{}, *ErrorObject) {
	var raw []json.RawMessage
	if err := json.Unmarshal(params, &raw); err != nil || len(raw) < 3 {
		return nil, invalidParams("Invalid params")
	}
	var callerStr string
	if err := json.Unmarshal(raw[0], &callerStr); err != nil || !common.IsHexAddress(callerStr) {
		return nil, invalidParams("Invalid address")
	}
	var tierName string
	if err := json.Unmarshal(raw[1], &tierName); err != nil {
		return nil, invalidParams("Invalid tier")
	}
	tier, ok := tierNames[tierName]
	if !ok {
		return nil, invalidParams("Invalid tier")
	}
	var wa windowArgs
	if err := json.Unmarshal(raw[2], &wa); err != nil || wa.Price == nil {
		return nil, invalidParams("Invalid window")
	}
	w := phase.Window{Price: wa.Price.ToInt()}
	for _, st := range wa.Stages {
		w.Stages = append(w.Stages, phase.Stage{Start: time.Unix(st.Start, 0).UTC(), Cap: st.Cap})
	}
	if err := s.engine.Controller().SetTierWindow(common.HexToAddress(callerStr), tier, w); err != nil {
		return nil, mintRejected(err)
	}
	return true, nil
}

// admin_setDefaultRoyalty updates the collection-wide royalty.
func (s *Server) adminSetDefaultRoyalty(params json.RawMessage) (interface{}, *ErrorObject) {
	args, rpcErr := parseArgs(params, 3)
	if rpcErr != nil {
		return nil, rpcErr
	}
	caller, rpcErr := argAddress(args, 0)
	if rpcErr != nil {
		return nil, rpcErr
	}
	receiver, rpcErr := argAddress(args, 1)
	if rpcErr != nil {
		return nil, rpcErr
	}
	bps, rpcErr := argUint64(args, 2)
	if rpcErr != nil {
		return nil, rpcErr
	}
	if err := s.engine.Controller().SetDefaultRoyalty(caller, receiver, bps); err != nil {
		return nil, mintRejected(err)
	}
	return true, nil
}

// admin_setTokenRoyalty sets a per-token royalty override.
func (s *Server) adminSetTokenRoyalty(params json.RawMessage) (interface{}, *ErrorObject) {
	args, rpcErr := parseArgs(params, 4)
	if rpcErr != nil {
		return nil, rpcErr
	}
	caller, rpcErr := argAddress(args, 0)
	if rpcErr != nil {
		return nil, rpcErr
	}
	id, rpcErr := argUint64(args, 1)
	if rpcErr != nil {
		return nil, rpcErr
	}
	receiver, rpcErr := argAddress(args, 2)
	if rpcErr != nil {
		return nil, rpcErr
	}
	bps, rpcErr := argUint64(args, 3)
	if rpcErr != nil {
		return nil, rpcErr
	}
	if err := s.engine.Controller().SetTokenRoyalty(caller, id, receiver, bps); err != nil {
		return nil, mintRejected(err)
	}
	return true, nil
}

// admin_resetTokenRoyalty removes a per-token royalty override.
func (s *Server) adminResetTokenRoyalty(params json.RawMessage) (interface{}, *ErrorObject) {
	args, rpcErr := parseArgs(params, 2)
	if rpcErr != nil {
		return nil, rpcErr
	}
	caller, rpcErr := argAddress(args, 0)
	if rpcErr != nil {
		return nil, rpcErr
	}
	id, rpcErr := argUint64(args, 1)
	if rpcErr != nil {
		return nil, rpcErr
	}
	if err := s.engine.Controller().ResetTokenRoyalty(caller, id); err != nil {
		return nil, mintRejected(err)
	}
	return true, nil
}

// admin_withdraw moves collected payment to the owner wallet.
func (s *Server) adminWithdraw(params json.RawMessage) (interface{}, *ErrorObject) {
	args, rpcErr := parseArgs(params, 2)
	if rpcErr != nil {
		return nil, rpcErr
	}
	caller, rpcErr := argAddress(args, 0)
	if rpcErr != nil {
		return nil, rpcErr
	}
	amount, rpcErr := argBig(args, 1)
	if rpcErr != nil {
		return nil, rpcErr
	}
	if err := s.engine.Controller().Withdraw(caller, amount); err != nil {
		return nil, mintRejected(err)
	}
	return true, nil
}

// admin_markContract flags an address as a contract for origin checks.
func (s *Server) adminMarkContract(params json.RawMessage) (interface{}, *ErrorObject) {
	args, rpcErr := parseArgs(params, 1)
	if rpcErr != nil {
		return nil, rpcErr
	}
	addr, rpcErr := argAddress(args, 0)
	if rpcErr != nil {
		return nil, rpcErr
	}
	s.engine.MarkContract(addr)
	return true, nil
}
