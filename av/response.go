// Copyright 2022 Stock Parfait

// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at

//     http://www.apache.org/licenses/LICENSE-2.0

// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package av

import (
	"encoding/json"
	"strings"

	"github.com/stockparfait/errors"
)

// Keys of the JSON object the provider sends in place of data when the call
// is rejected or throttled.
var providerMessageKeys = []string{"Error Message", "Information", "Note"}

// ProviderError detects an error or a rate limit notice which the provider
// returns as a JSON object, even when CSV was requested, and converts it into
// an error. It returns nil for any other body, including a malformed JSON.
//
// Such a body would otherwise parse as a few malformed CSV records and yield an
// empty table.
func ProviderError(body string) error {
	s := strings.TrimSpace(body)
	if !strings.HasPrefix(s, "{") {
		return nil
	}
	var msg map[string]interface{}
	if err := json.Unmarshal([]byte(s), &msg); err != nil {
		return nil
	}
	for _, k := range providerMessageKeys {
		if v, ok := msg[k].(string); ok {
			return errors.Reason("%s: %s", k, v)
		}
	}
	return nil
}
