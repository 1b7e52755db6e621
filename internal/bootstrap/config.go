package bootstrap

import (
	"github.com/spf13/viper"
)

type Config struct {
	ServerPort  string `mapstructure:"SERVER_PORT"`
	RedisUrl    string `mapstructure:"REDIS_URL"`
	MongoUri    string `mapstructure:"MONGO_URI"`
	IsLocalCors bool   `mapstructure:"LOCAL_CORS"`

	KatagoPath   string `mapstructure:"KATAGO_PATH"`
	KatagoModel  string `mapstructure:"KATAGO_MODEL"`
	KatagoConfig string `mapstructure:"KATAGO_CONFIG"`

	DefaultBoardSize int     `mapstructure:"DEFAULT_BOARD_SIZE"`
	DefaultKomi      float64 `mapstructure:"DEFAULT_KOMI"`
	MaxVisits        int     `mapstructure:"MAX_VISITS"`
	IncludeOwnership bool    `mapstructure:"INCLUDE_OWNERSHIP"`

	BalancePlay          bool    `mapstructure:"BALANCE_PLAY"`
	BalanceMinVisits     int     `mapstructure:"BALANCE_MIN_VISITS"`
	BalanceRandomizeEval float64 `mapstructure:"BALANCE_RANDOMIZE_EVAL"`
	BalanceMinEval       float64 `mapstructure:"BALANCE_MIN_EVAL"`
	BalanceTargetScore   float64 `mapstructure:"BALANCE_TARGET_SCORE"`
}

func Setup(cfgPath string) (*Config, error) {
	viper.SetConfigFile(cfgPath)

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	var cfg Config

	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}
