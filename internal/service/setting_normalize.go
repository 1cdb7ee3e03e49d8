package service

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pharmanext/internal/constants"
	"github.com/pharmanext/internal/models"
)

// normalizeSettingValueByKey 按设置键归一化写入值
func normalizeSettingValueByKey(key string, value map[string]interface{}) models.JSON {
	normalized := models.JSON{}
	for k, v := range value {
		normalized[k] = v
	}
	if key != constants.SettingKeySiteConfig {
		return normalized
	}

	if raw, ok := normalized[constants.SettingFieldSiteCurrency]; ok {
		if currency, ok := raw.(string); ok {
			normalized[constants.SettingFieldSiteCurrency] = normalizeSiteCurrency(currency)
		}
	}
	if raw, ok := normalized[constants.SettingFieldSiteName]; ok {
		if name, ok := raw.(string); ok {
			normalized[constants.SettingFieldSiteName] = strings.TrimSpace(name)
		}
	}
	if raw, ok := normalized[constants.SettingFieldInvoiceFooter]; ok {
		if footer, ok := raw.(string); ok {
			normalized[constants.SettingFieldInvoiceFooter] = strings.TrimSpace(footer)
		}
	}
	return normalized
}

func normalizeSiteCurrency(raw string) string {
	currency := strings.ToUpper(strings.TrimSpace(raw))
	if len(currency) != 3 {
		return constants.DefaultCurrency
	}
	return currency
}

func readString(raw map[string]interface{}, key, fallback string) string {
	if raw == nil {
		return fallback
	}
	value, ok := raw[key]
	if !ok || value == nil {
		return fallback
	}
	if s, ok := value.(string); ok {
		trimmed := strings.TrimSpace(s)
		if trimmed == "" {
			return fallback
		}
		return trimmed
	}
	return fallback
}

func readBool(raw map[string]interface{}, key string, fallback bool) bool {
	if raw == nil {
		return fallback
	}
	value, ok := raw[key]
	if !ok || value == nil {
		return fallback
	}
	switch v := value.(type) {
	case bool:
		return v
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fallback
		}
		return parsed
	default:
		return fallback
	}
}

func readInt(raw map[string]interface{}, key string, fallback int) int {
	if raw == nil {
		return fallback
	}
	value, ok := raw[key]
	if !ok || value == nil {
		return fallback
	}
	switch v := value.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return int(i)
		}
		return fallback
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fallback
		}
		return parsed
	default:
		return fallback
	}
}

func toStringAnyMap(raw interface{}) map[string]interface{} {
	switch v := raw.(type) {
	case map[string]interface{}:
		return v
	case models.JSON:
		return v
	default:
		return nil
	}
}
