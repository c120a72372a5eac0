package config

import "time"

type PostgresConfig struct {
	DSN             string        `env:"PG_DSN"`
	MaxOpenConns    int           `env:"PG_MAX_OPEN_CONNS,optional"`
	MaxIdleConns    int           `env:"PG_MAX_IDLE_CONNS,optional"`
	ConnMaxIdleTime time.Duration `env:"PG_CONN_MAX_IDLE_TIME,optional"`
	ConnMaxLifetime time.Duration `env:"PG_CONN_MAX_LIFETIME,optional"`
}

// ChainConfig selects the external settlement backend. Mode "local" needs
// no further settings; mode "ethereum" needs the RPC endpoint, the
// operator key, and the mint registry address.
type ChainConfig struct {
	Mode           string `env:"CHAIN_MODE,optional"`
	RPCURL         string `env:"ETH_RPC_URL,optional"`
	OperatorKeyHex string `env:"ETH_OPERATOR_KEY,optional"`
	RegistryHex    string `env:"ETH_MINT_REGISTRY,optional"`
}
