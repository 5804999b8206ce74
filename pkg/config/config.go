// Package config provides configuration management for the drop engine.
package config

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/tyler-smith/go-bip39"
)

// Default values.
var (
	DefaultHost           = "127.0.0.1"
	DefaultPort           = 8560
	DefaultAccountCount   = 10
	DefaultBalance        = new(big.Int).Mul(big.NewInt(10000), big.NewInt(1e18)) // 10000 ETH
	DefaultMnemonic       = "test test test test test test test test test test test junk"
	DefaultPaymentRail    = "value"
	DefaultCollectionName = "Genesis Wearables"
	DefaultSymbol         = "WEAR"
	DefaultMaxSupply      = uint64(10000)
)

// Valid payment rails.
var validPaymentRails = map[string]bool{
	"value": true,
	"token": true,
}

// Config defines the engine configuration.
type Config struct {
	// Server configuration
	Host string `json:"host"`
	Port int    `json:"port"`

	// Account configuration
	AccountCount   int      `json:"accountCount"`
	DefaultBalance *big.Int `json:"defaultBalance"`
	Mnemonic       string   `json:"mnemonic"`

	// Collection configuration
	Collection CollectionConfig `json:"collection"`

	// Payment configuration
	PaymentRail       string       `json:"paymentRail"` // value, token
	RefundOverpayment bool         `json:"refundOverpayment"`
	PaymentToken      *TokenConfig `json:"paymentToken,omitempty"`

	// Sale schedule (optional; every phase can also be configured at
	// runtime through the admin surface)
	Sale *SaleConfig `json:"sale,omitempty"`
}

// CollectionConfig defines the collection's identity and bounds.
type CollectionConfig struct {
	Name          string `json:"name"`
	Symbol        string `json:"symbol"`
	MaxSupply     uint64 `json:"maxSupply"`
	BaseURI       string `json:"baseUri"`
	MysteryBoxURI string `json:"mysteryBoxUri"`
}

// TokenConfig defines a companion fungible token.
type TokenConfig struct {
	Name   string   `json:"name"`
	Symbol string   `json:"symbol"`
	Cap    *big.Int `json:"cap,omitempty"` // nil = uncapped
}

// SaleConfig defines the initial sale schedule. Times are unix seconds.
type SaleConfig struct {
	Dev       *DevPhaseConfig        `json:"dev,omitempty"`
	Earlybird *TierConfig            `json:"earlybird,omitempty"`
	Private   *TierConfig            `json:"private,omitempty"`
	Community *TierConfig            `json:"community,omitempty"`
	Public    *PublicPhaseConfig     `json:"public,omitempty"`
	Roots     map[string]common.Hash `json:"roots,omitempty"` // dev, fastpass, presale, public
}

// DevPhaseConfig defines the developer mint window.
type DevPhaseConfig struct {
	Start int64    `json:"start"`
	Cap   uint64   `json:"cap"`
	Price *big.Int `json:"price"`
}

// TierConfig defines one presale tier.
type TierConfig struct {
	Stages []StageConfig `json:"stages"`
	Price  *big.Int      `json:"price"`
}

// StageConfig defines one stage boundary/cap pair.
type StageConfig struct {
	Start int64  `json:"start"`
	Cap   uint64 `json:"cap"`
}

// PublicPhaseConfig defines the public allowlist phase.
type PublicPhaseConfig struct {
	Enabled bool     `json:"enabled"`
	Price   *big.Int `json:"price"`
}

// Default returns a configuration with default values.
func Default() *Config {
	return &Config{
		Host:           DefaultHost,
		Port:           DefaultPort,
		AccountCount:   DefaultAccountCount,
		DefaultBalance: new(big.Int).Set(DefaultBalance),
		Mnemonic:       DefaultMnemonic,
		PaymentRail:    DefaultPaymentRail,
		Collection: CollectionConfig{
			Name:      DefaultCollectionName,
			Symbol:    DefaultSymbol,
			MaxSupply: DefaultMaxSupply,
		},
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	var errs []string

	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, "port must be between 1 and 65535")
	}

	if c.AccountCount <= 0 {
		errs = append(errs, "accountCount must be greater than 0")
	}

	if c.Mnemonic != "" && !bip39.IsMnemonicValid(c.Mnemonic) {
		errs = append(errs, "mnemonic is invalid")
	}

	if !validPaymentRails[c.PaymentRail] {
		errs = append(errs, "paymentRail must be one of: value, token")
	}

	if c.PaymentRail == "token" && c.PaymentToken == nil {
		errs = append(errs, "paymentToken must be configured for the token rail")
	}

	if c.Collection.Name == "" || c.Collection.Symbol == "" {
		errs = append(errs, "collection name and symbol cannot be empty")
	}

	if c.Collection.MaxSupply == 0 {
		errs = append(errs, "collection maxSupply must be greater than 0")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

// LoadFromFile loads configuration from a JSON file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return MergeWithDefaults(&cfg), nil
}

// MergeWithDefaults merges partial config with default values.
func MergeWithDefaults(partial *Config) *Config {
	def := Default()

	if partial.Host != "" {
		def.Host = partial.Host
	}
	if partial.Port != 0 {
		def.Port = partial.Port
	}
	if partial.AccountCount != 0 {
		def.AccountCount = partial.AccountCount
	}
	if partial.DefaultBalance != nil {
		def.DefaultBalance = partial.DefaultBalance
	}
	if partial.Mnemonic != "" {
		def.Mnemonic = partial.Mnemonic
	}
	if partial.PaymentRail != "" {
		def.PaymentRail = partial.PaymentRail
	}
	if partial.Collection.Name != "" {
		def.Collection.Name = partial.Collection.Name
	}
	if partial.Collection.Symbol != "" {
		def.Collection.Symbol = partial.Collection.Symbol
	}
	if partial.Collection.MaxSupply != 0 {
		def.Collection.MaxSupply = partial.Collection.MaxSupply
	}
	def.Collection.BaseURI = partial.Collection.BaseURI
	def.Collection.MysteryBoxURI = partial.Collection.MysteryBoxURI
	def.RefundOverpayment = partial.RefundOverpayment
	def.PaymentToken = partial.PaymentToken
	def.Sale = partial.Sale

	return def
}

// ServerAddr returns the server address string.
func (c *Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Account is a derived dev account.
type Account struct {
	Address common.Address
	Key     []byte // secp256k1 private key bytes
}

// DeriveAccounts derives AccountCount deterministic dev accounts from the
// mnemonic. Index 0 is the collection owner.
func (c *Config) DeriveAccounts() ([]Account, error) {
	if !bip39.IsMnemonicValid(c.Mnemonic) {
		return nil, errors.New("mnemonic is invalid")
	}
	seed := bip39.NewSeed(c.Mnemonic, "")

	accounts := make([]Account, 0, c.AccountCount)
	for i := 0; i < c.AccountCount; i++ {
		var index [4]byte
		binary.BigEndian.PutUint32(index[:], uint32(i))
		material := crypto.Keccak256(seed, index[:])

		key, err := crypto.ToECDSA(material)
		for err != nil {
			// out-of-range scalar; rehash until valid
			material = crypto.Keccak256(material)
			key, err = crypto.ToECDSA(material)
		}
		accounts = append(accounts, Account{
			Address: crypto.PubkeyToAddress(key.PublicKey),
			Key:     crypto.FromECDSA(key),
		})
	}
	return accounts, nil
}
