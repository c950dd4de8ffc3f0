// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"log"

	"github.com/spf13/viper"
)

// FilterConfig are the validity thresholds applied to refined repeats.
type FilterConfig struct {
	// the largest indexable repeat-unit length
	MaxPeriod int `mapstructure:"max-period"`

	// the largest indexable repeat span in bases
	MaxLength int `mapstructure:"max-length"`

	// the lowest acceptable TRF alignment score
	MinScore int `mapstructure:"min-score"`
}

// TRFConfig are Tandem Repeats Finder alignment parameters.
type TRFConfig struct {
	Match     int `mapstructure:"match"`
	Mismatch  int `mapstructure:"mismatch"`
	Delta     int `mapstructure:"delta"`
	MatchProb int `mapstructure:"match-prob"`
	IndelProb int `mapstructure:"indel-prob"`
	MinScore  int `mapstructure:"min-score"`
	MaxPeriod int `mapstructure:"max-period"`
}

// LobSTRConfig locates the external lobSTR install.
type LobSTRConfig struct {
	// root of the lobSTR install (bin/, models/, scripts/, hg38/)
	Home string `mapstructure:"home"`
}

// EntrezConfig is for the NCBI record fetcher.
type EntrezConfig struct {
	// contact email NCBI asks for on every request
	Email string `mapstructure:"email"`

	// the database to query
	DB string `mapstructure:"db"`

	// records fetched per search term
	RetMax int `mapstructure:"retmax"`

	// record format, eg "fasta"
	RetType string `mapstructure:"rettype"`
}

// Config is the root-level settings struct: a mix of settings available
// in settings.yaml and those passed from the command line.
type Config struct {
	Filter FilterConfig `mapstructure:"filter"`
	TRF    TRFConfig    `mapstructure:"trf"`
	LobSTR LobSTRConfig `mapstructure:"lobstr"`
	Entrez EntrezConfig `mapstructure:"entrez"`
}

// SetDefaults registers every setting's default value with viper.
func SetDefaults() {
	viper.SetDefault("filter.max-period", 6)
	viper.SetDefault("filter.max-length", 150)
	viper.SetDefault("filter.min-score", 30)

	viper.SetDefault("trf.match", 2)
	viper.SetDefault("trf.mismatch", 4090)
	viper.SetDefault("trf.delta", 4090)
	viper.SetDefault("trf.match-prob", 80)
	viper.SetDefault("trf.indel-prob", 10)
	viper.SetDefault("trf.min-score", 30)
	viper.SetDefault("trf.max-period", 6)

	viper.SetDefault("lobstr.home", "/mnt/software/lobSTR-4.0.0")

	viper.SetDefault("entrez.email", "")
	viper.SetDefault("entrez.db", "nuccore")
	viper.SetDefault("entrez.retmax", 1)
	viper.SetDefault("entrez.rettype", "fasta")
}

// New returns a Config populated by Viper settings (from settings.yaml
// and/or command line arguments).
func New() *Config {
	SetDefaults()

	c := &Config{}
	if err := viper.Unmarshal(c); err != nil {
		log.Fatalf("unable to decode settings into struct, %v", err)
	}
	return c
}
