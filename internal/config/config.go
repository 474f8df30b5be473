package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/rwamarket/auctiond/internal/core/domain"
)

const (
	// ListenPortKey is the port the HTTP interface listens on.
	ListenPortKey = "LISTEN_PORT"
	// DatadirKey is the local data directory storing the internal state of the
	// daemon.
	DatadirKey = "DATADIR"
	// LogLevelKey are the different logging levels. For reference on the values
	// https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// DBTypeKey is used to switch database type between those supported.
	DBTypeKey = "DB_TYPE"
	// TreasuryKey is the identity receiving platform fees.
	TreasuryKey = "TREASURY"
	// EscrowAccountKey is the identity holding escrowed bid funds.
	EscrowAccountKey = "ESCROW_ACCOUNT"
	// FeeBasisPointsKey is the default platform fee captured by new auctions.
	FeeBasisPointsKey = "FEE_BASIS_POINTS"
	// MinBidIncrementKey is the default minimum bid increment, in base units,
	// captured by new auctions.
	MinBidIncrementKey = "MIN_BID_INCREMENT"
	// CurrenciesKey is the accepted payment token set.
	CurrenciesKey = "CURRENCIES"
	// JWTSecretKey is the HS256 secret validating API tokens.
	JWTSecretKey = "JWT_SECRET"
	// BidRateLimitKey is the per-second rate limit on the bid endpoint.
	BidRateLimitKey = "BID_RATE_LIMIT"
	// RegistryAuthorityKey is the identity allowed to mint and re-appraise
	// assets on the embedded registry.
	RegistryAuthorityKey = "REGISTRY_AUTHORITY"

	// DBBadger ...
	DBBadger = "badger"
	// DBInMemory ...
	DBInMemory = "inmemory"

	// DbLocation is the subdirectory of the datadir holding the badger store.
	DbLocation = "db"
)

var vip *viper.Viper

// InitConfig loads the configuration from the environment, applies defaults
// and validates it.
func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("AUCTION")
	vip.AutomaticEnv()

	vip.SetDefault(ListenPortKey, 7070)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(DatadirKey, defaultDatadir())
	vip.SetDefault(DBTypeKey, DBBadger)
	vip.SetDefault(TreasuryKey, "platform.treasury")
	vip.SetDefault(EscrowAccountKey, "platform.escrow")
	vip.SetDefault(FeeBasisPointsKey, 250)
	vip.SetDefault(MinBidIncrementKey, 1)
	vip.SetDefault(CurrenciesKey, []string{"USD1", "USDC"})
	vip.SetDefault(BidRateLimitKey, 50)
	vip.SetDefault(RegistryAuthorityKey, "platform.authority")

	if err := validate(); err != nil {
		return fmt.Errorf("error while validating config: %s", err)
	}

	if err := initDatadir(); err != nil {
		return fmt.Errorf("error while creating datadir: %s", err)
	}

	return nil
}

func GetString(key string) string {
	return vip.GetString(key)
}

func GetInt(key string) int {
	return vip.GetInt(key)
}

func GetStringSlice(key string) []string {
	return vip.GetStringSlice(key)
}

func GetDuration(key string) time.Duration {
	return vip.GetDuration(key)
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

// GetCurrencies returns the accepted currency set, rejecting unknown tags.
func GetCurrencies() ([]domain.Currency, error) {
	tags := GetStringSlice(CurrenciesKey)
	currencies := make([]domain.Currency, 0, len(tags))
	for _, tag := range tags {
		ccy, err := domain.ParseCurrency(tag)
		if err != nil {
			return nil, fmt.Errorf("unknown currency %q", tag)
		}
		currencies = append(currencies, ccy)
	}
	return currencies, nil
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("missing datadir")
	}

	dbType := GetString(DBTypeKey)
	if dbType != DBBadger && dbType != DBInMemory {
		return fmt.Errorf("unsupported db type %q", dbType)
	}

	if feeBps := GetInt(FeeBasisPointsKey); feeBps < 0 || feeBps > domain.MaxFeeBasisPoints {
		return fmt.Errorf(
			"%s must be in range [0, %d]", FeeBasisPointsKey, domain.MaxFeeBasisPoints,
		)
	}

	if _, err := GetCurrencies(); err != nil {
		return err
	}

	if len(GetString(JWTSecretKey)) <= 0 {
		return fmt.Errorf("missing jwt secret")
	}

	if GetInt(BidRateLimitKey) <= 0 {
		return fmt.Errorf("%s must be greater than 0", BidRateLimitKey)
	}

	return nil
}

func initDatadir() error {
	return makeDirectoryIfNotExists(filepath.Join(GetDatadir(), DbLocation))
}

func defaultDatadir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".auctiond"
	}
	return filepath.Join(home, ".auctiond")
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
