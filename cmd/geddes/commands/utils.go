package commands

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/arloliu/geddes"
	"github.com/arloliu/geddes/format"
)

// LoadConfig loads configuration from files and environment
func LoadConfig(v *viper.Viper) error {
	if configFile := v.GetString("config"); configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("GEDDES")
	v.AutomaticEnv()

	return nil
}

// SetupLogging configures logger from the log_level and log_format settings
func SetupLogging(v *viper.Viper, logger *logrus.Logger) error {
	level, err := logrus.ParseLevel(v.GetString("log_level"))
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	logger.SetLevel(level)

	switch strings.ToLower(v.GetString("log_format")) {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("invalid log format %q", v.GetString("log_format"))
	}

	return nil
}

// ReadOptions builds the library read options from the max_size and raw_order settings
func ReadOptions(v *viper.Viper, logger logrus.FieldLogger) ([]geddes.Option, error) {
	opts := []geddes.Option{geddes.WithLogger(logger)}

	if n := v.GetInt64("max_size"); n > 0 {
		opts = append(opts, geddes.WithMaxInputSize(n))
	}

	if order := strings.TrimSpace(v.GetString("raw_order")); order != "" {
		first, second, err := parseRawOrder(order)
		if err != nil {
			return nil, err
		}
		opts = append(opts, geddes.WithRawOrder(first, second))
	}

	return opts, nil
}

func parseRawOrder(order string) (format.Decoder, format.Decoder, error) {
	parts := strings.Split(order, ",")
	if len(parts) != 2 {
		return format.DecoderUnknown, format.DecoderUnknown,
			fmt.Errorf("invalid raw order %q: want two decoders, e.g. gsas,bruker", order)
	}

	first, err := format.ParseDecoder(parts[0])
	if err != nil {
		return format.DecoderUnknown, format.DecoderUnknown, fmt.Errorf("invalid raw order: %w", err)
	}
	second, err := format.ParseDecoder(parts[1])
	if err != nil {
		return format.DecoderUnknown, format.DecoderUnknown, fmt.Errorf("invalid raw order: %w", err)
	}

	return first, second, nil
}
