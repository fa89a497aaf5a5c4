/*
 * Copyright (c) 2025-2026, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package log

import (
	"log/slog"
	"unicode/utf8"
)

// visitorIDPrefix is how many leading characters of a visitor id reach the logs.
const visitorIDPrefix = 8

// Field represents a key-value pair for structured logging.
type Field struct {
	Key   string
	Value interface{}
}

// String creates a Field with a string value.
func String(key, value string) Field {

	return Field{Key: key, Value: value}
}

// Int creates a Field with an integer value.
func Int(key string, value int) Field {

	return Field{Key: key, Value: value}
}

// Any creates a Field with any value.
func Any(key string, value interface{}) Field {

	return Field{Key: key, Value: value}
}

// Error creates an "error" field. A nil error is logged as an empty string.
func Error(value error) Field {

	if value == nil {
		return Field{Key: "error", Value: ""}
	}
	return Field{Key: "error", Value: value.Error()}
}

// VisitorID logs only the first characters of a visitor id.
func VisitorID(id string) Field {

	if utf8.RuneCountInString(id) <= visitorIDPrefix {
		return Field{Key: "visitor_id", Value: id}
	}
	return Field{Key: "visitor_id", Value: string([]rune(id)[:visitorIDPrefix]) + "..."}
}

func StorageKey(key string) Field {
	return Field{Key: "storage_key", Value: key}
}

func TraceID(id string) Field {
	return Field{Key: "trace_id", Value: id}
}

// Flag names one Consent Mode signal flag.
func Flag(name string) Field {
	return Field{Key: "flag", Value: name}
}

func (f Field) attr() slog.Attr {
	switch v := f.Value.(type) {
	case string:
		return slog.String(f.Key, v)
	case int:
		return slog.Int(f.Key, v)
	default:
		return slog.Any(f.Key, v)
	}
}
