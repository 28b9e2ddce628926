package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// string-friendly durations for file-based configuration.
type StructuredJSONConfig struct {
	App struct {
		AccountID string `json:"account_id"`
		AppID     string `json:"app_id"`
		AppSecret string `json:"app_secret"`
		Domain    string `json:"domain"`
	} `json:"app,omitempty"`

	Stream struct {
		ReceiveID      string   `json:"receive_id"`
		ReceiveIDType  string   `json:"receive_id_type"`
		UpdateThrottle Duration `json:"update_throttle"`
	} `json:"stream,omitempty"`

	Adapter struct {
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			AccountID: jsonCfg.App.AccountID,
			AppID:     jsonCfg.App.AppID,
			AppSecret: jsonCfg.App.AppSecret,
			Domain:    jsonCfg.App.Domain,
		},
		Stream: Stream{
			ReceiveID:      jsonCfg.Stream.ReceiveID,
			ReceiveIDType:  jsonCfg.Stream.ReceiveIDType,
			UpdateThrottle: time.Duration(jsonCfg.Stream.UpdateThrottle),
		},
		Adapter: Adapter{
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
