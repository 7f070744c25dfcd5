package ovh

import (
	"context"
	"fmt"

	"gopkg.in/ini.v1"
)

// NewClientFromFile creates a client from an ini configuration file in the
// python-ovh `ovh.conf` format:
//
//	[default]
//	endpoint=ovh-eu
//
//	[ovh-eu]
//	application_key=my_app_key
//	application_secret=my_application_secret
//	consumer_key=my_consumer_key
//
// The `default` section selects the endpoint identifier; the section named
// after it supplies the credentials. A missing key fails with
// *MissingKeyError.
func NewClientFromFile(ctx context.Context, path string, opts ...Option) (*Client, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("ovh: load config %s: %w", path, err)
	}

	endpoint := cfg.Section("default").Key("endpoint").String()
	if endpoint == "" {
		return nil, &MissingKeyError{Key: "endpoint"}
	}

	section := cfg.Section(endpoint)
	appKey := section.Key("application_key").String()
	if appKey == "" {
		return nil, &MissingKeyError{Key: "application_key"}
	}
	appSecret := section.Key("application_secret").String()
	if appSecret == "" {
		return nil, &MissingKeyError{Key: "application_secret"}
	}
	consumerKey := section.Key("consumer_key").String()
	if consumerKey == "" {
		return nil, &MissingKeyError{Key: "consumer_key"}
	}

	return NewClient(ctx, endpoint, appKey, appSecret, consumerKey, opts...)
}
