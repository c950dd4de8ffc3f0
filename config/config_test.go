// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"testing"

	"github.com/spf13/viper"
)

func TestConfig_Defaults(t *testing.T) {
	viper.Reset()
	c := New()

	if c.Filter.MaxPeriod != 6 || c.Filter.MaxLength != 150 || c.Filter.MinScore != 30 {
		t.Errorf("wrong filter defaults: %+v", c.Filter)
	}
	if c.TRF.Match != 2 || c.TRF.Mismatch != 4090 || c.TRF.MaxPeriod != 6 {
		t.Errorf("wrong trf defaults: %+v", c.TRF)
	}
	if c.LobSTR.Home == "" {
		t.Error("lobstr home default missing")
	}
	if c.Entrez.DB != "nuccore" || c.Entrez.RetMax != 1 || c.Entrez.RetType != "fasta" {
		t.Errorf("wrong entrez defaults: %+v", c.Entrez)
	}
}

func TestConfig_Overrides(t *testing.T) {
	viper.Reset()
	viper.Set("filter.min-score", 50)
	viper.Set("lobstr.home", "/opt/lobSTR")

	c := New()
	if c.Filter.MinScore != 50 {
		t.Errorf("min-score = %d, want the override 50", c.Filter.MinScore)
	}
	if c.LobSTR.Home != "/opt/lobSTR" {
		t.Errorf("home = %q, want the override", c.LobSTR.Home)
	}
	viper.Reset()
}
