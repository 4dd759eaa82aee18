/*
 * KmerGraph
 *
 * Copyright 2021 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

/*
Package config contains the configuration of the kmergraph tools.
*/
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/krotik/common/errorutil"
	"github.com/krotik/common/fileutil"
	"github.com/krotik/kmergraph/storage"
	"github.com/krotik/kmergraph/traversal"
)

// Global variables
// ================

/*
DefaultConfigFile is the default config file which will be used to configure
the kmergraph tools
*/
var DefaultConfigFile = "kmergraph.config.json"

/*
Known configuration options
*/
const (
	Orientation           = "Orientation"
	TraversalColors       = "TraversalColors"
	MaxNodes              = "MaxNodes"
	KmerCacheSize         = "KmerCacheSize"
	BinarySearchCacheSize = "BinarySearchCacheSize"
	SearchBlockSize       = "SearchBlockSize"
	LoggingInterval       = "LoggingInterval"
	LogLevel              = "LogLevel"
)

/*
DefaultConfig is the defaut configuration
*/
var DefaultConfig = map[string]interface{}{
	Orientation:           "both",
	TraversalColors:       "",
	MaxNodes:              0,
	KmerCacheSize:         0,
	BinarySearchCacheSize: 0,
	SearchBlockSize:       storage.DefaultSearchBlockSize,
	LoggingInterval:       90,
	LogLevel:              "Info",
}

/*
Config is the actual config which is used
*/
var Config map[string]interface{}

/*
LoadConfigFile loads a given config file. If the config file does not exist it is
created with the default options.
*/
func LoadConfigFile(configfile string) error {
	data, err := fileutil.LoadConfig(configfile, DefaultConfig)

	if err == nil {

		// A newly written config file returns the default map itself

		Config = make(map[string]interface{})
		for k, v := range data {
			Config[k] = v
		}
	}

	return err
}

/*
LoadDefaultConfig loads the default configuration.
*/
func LoadDefaultConfig() {
	data := make(map[string]interface{})
	for k, v := range DefaultConfig {
		data[k] = v
	}

	Config = data
}

// Helper functions
// ================

/*
Str reads a config value as a string value.
*/
func Str(key string) string {
	return fmt.Sprint(Config[key])
}

/*
Int reads a config value as an int value.
*/
func Int(key string) int64 {
	ret, err := strconv.ParseInt(fmt.Sprint(Config[key]), 10, 64)

	errorutil.AssertTrue(err == nil,
		fmt.Sprintf("Could not parse config key %v: %v", key, err))

	return ret
}

/*
Bool reads a config value as a boolean value.
*/
func Bool(key string) bool {
	ret, err := strconv.ParseBool(fmt.Sprint(Config[key]))

	errorutil.AssertTrue(err == nil,
		fmt.Sprintf("Could not parse config key %v: %v", key, err))

	return ret
}

/*
IntList reads a config value as a list of int values. The value can be a
list or a comma separated string. Returns nil for an empty value.
*/
func IntList(key string) []int {
	var items []string

	if l, ok := Config[key].([]interface{}); ok {
		for _, i := range l {
			items = append(items, fmt.Sprint(i))
		}
	} else if s := strings.TrimSpace(Str(key)); s != "" && Config[key] != nil {
		items = strings.Split(s, ",")
	}

	if len(items) == 0 {
		return nil
	}

	ret := make([]int, 0, len(items))

	for _, i := range items {
		v, err := strconv.Atoi(strings.TrimSpace(i))

		errorutil.AssertTrue(err == nil,
			fmt.Sprintf("Could not parse config key %v: %v", key, err))

		ret = append(ret, v)
	}

	return ret
}

/*
StorageOptions returns the index options of the current config.
*/
func StorageOptions() storage.Options {
	return storage.Options{
		KmerCacheSize:         int(Int(KmerCacheSize)),
		BinarySearchCacheSize: int(Int(BinarySearchCacheSize)),
		SearchBlockSize:       int(Int(SearchBlockSize)),
	}
}

/*
TraversalOptions returns the traversal options of the current config.
*/
func TraversalOptions() (traversal.Options, error) {
	o, err := traversal.ParseOrientation(Str(Orientation))

	return traversal.Options{
		Orientation: o,
		Colors:      IntList(TraversalColors),
		MaxNodes:    int(Int(MaxNodes)),
	}, err
}

/*
LoggingIntervalDuration returns the interval between progress messages.
*/
func LoggingIntervalDuration() time.Duration {
	return time.Duration(Int(LoggingInterval)) * time.Second
}
