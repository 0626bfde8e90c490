package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
)

// Policy converts the RTGS section into channel limits
func (c RTGSConfig) Policy() (entity.RTGSPolicy, error) {
	currency, err := entity.ParseCurrency(c.Currency)
	if err != nil {
		return entity.RTGSPolicy{}, fmt.Errorf("rtgs.currency: %w", err)
	}

	minimum, err := entity.ParseMoney(c.MinimumAmount, currency)
	if err != nil {
		return entity.RTGSPolicy{}, fmt.Errorf("rtgs.minimumAmount: %w", err)
	}
	maximum, err := entity.ParseMoney(c.MaximumAmount, currency)
	if err != nil {
		return entity.RTGSPolicy{}, fmt.Errorf("rtgs.maximumAmount: %w", err)
	}
	daily, err := entity.ParseMoney(c.DailyLimit, currency)
	if err != nil {
		return entity.RTGSPolicy{}, fmt.Errorf("rtgs.dailyLimit: %w", err)
	}

	if cmp, _ := minimum.Compare(maximum); cmp > 0 {
		return entity.RTGSPolicy{}, fmt.Errorf("rtgs.minimumAmount %s exceeds maximumAmount %s", minimum, maximum)
	}
	if cmp, _ := maximum.Compare(daily); cmp > 0 {
		return entity.RTGSPolicy{}, fmt.Errorf("rtgs.maximumAmount %s exceeds dailyLimit %s", maximum, daily)
	}
	if strings.TrimSpace(c.SettlementAccount) == "" {
		return entity.RTGSPolicy{}, errors.New("rtgs.settlementAccount is required")
	}

	return entity.RTGSPolicy{
		Currency:            currency,
		MinimumAmount:       minimum,
		MaximumAmount:       maximum,
		DailyLimit:          daily,
		SettlementAccountID: c.SettlementAccount,
	}, nil
}

// Policy converts the UPI section into channel limits
func (c UPIConfig) Policy() (entity.UPIPolicy, error) {
	currency, err := entity.ParseCurrency(c.Currency)
	if err != nil {
		return entity.UPIPolicy{}, fmt.Errorf("upi.currency: %w", err)
	}
	ceiling, err := entity.ParseMoney(c.AmountCeiling, currency)
	if err != nil {
		return entity.UPIPolicy{}, fmt.Errorf("upi.amountCeiling: %w", err)
	}
	if !ceiling.IsPositive() {
		return entity.UPIPolicy{}, errors.New("upi.amountCeiling must be positive")
	}
	if c.PendingTimeout <= 0 {
		return entity.UPIPolicy{}, errors.New("upi.pendingTimeout must be positive")
	}
	if strings.TrimSpace(c.SettlementAccount) == "" {
		return entity.UPIPolicy{}, errors.New("upi.settlementAccount is required")
	}

	return entity.UPIPolicy{
		Currency:            currency,
		AmountCeiling:       ceiling,
		PendingTimeout:      coreport.Duration(c.PendingTimeout),
		SettlementAccountID: c.SettlementAccount,
	}, nil
}

// Validate reports every missing or inconsistent setting at once
func Validate(cfg *Config) error {
	var problems []string

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("server.port %d out of range", cfg.Server.Port))
	}

	switch cfg.Database.Driver {
	case "memory":
	case "postgres":
		if cfg.Database.Host == "" {
			problems = append(problems, "database.host")
		}
		if cfg.Database.Username == "" {
			problems = append(problems, "database.username")
		}
		if cfg.Database.Database == "" {
			problems = append(problems, "database.database")
		}
	default:
		problems = append(problems, fmt.Sprintf("database.driver %q unsupported", cfg.Database.Driver))
	}

	if cfg.Settlement.Workers <= 0 {
		problems = append(problems, "settlement.workers must be positive")
	}
	if cfg.Settlement.DefaultMaxAttempts <= 0 {
		problems = append(problems, "settlement.defaultMaxAttempts must be positive")
	}
	if cfg.Settlement.DistributedLocks && cfg.Database.Driver != "postgres" {
		problems = append(problems, "settlement.distributedLocks requires the postgres driver")
	}
	if cfg.RTGS.MaxEnquiries <= 0 {
		problems = append(problems, "rtgs.maxEnquiries must be positive")
	}

	if _, err := cfg.RTGS.Policy(); err != nil {
		problems = append(problems, err.Error())
	}
	if _, err := cfg.UPI.Policy(); err != nil {
		problems = append(problems, err.Error())
	}

	for i, seed := range cfg.Database.Accounts {
		if seed.ID == "" {
			problems = append(problems, fmt.Sprintf("database.accounts[%d].id", i))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, ", "))
	}
	return nil
}
