// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package serializer provides encoding and decoding of version data in multiple formats.
//
// # Overview
//
// The serializer package handles conversion between version data structures and
// various output formats including JSON, YAML, and human-readable tables. It supports
// both encoding (writing data) and decoding (reading data) operations with automatic
// format detection.
//
// # Supported Formats
//
// JSON:
//   - Machine-parseable, compact representation
//   - Suitable for API responses and programmatic consumption
//   - Standard encoding/json package
//
// YAML:
//   - Human-readable with preserved structure
//   - Suitable for configuration files and version control
//   - gopkg.in/yaml.v3 package
//
// Table:
//   - Flattened key/value representation
//   - Suitable for terminal/console viewing
//   - Read-only (no deserialization support)
//
// # Usage - Encoding
//
// Write to stdout (YAML):
//
//	w := serializer.NewStdoutWriter(serializer.FormatYAML)
//	defer w.Close()
//
//	data := map[string]any{"version": "1.2.3+9f3b21c", "build_number": 10203}
//	if err := w.Serialize(ctx, data); err != nil {
//	    log.Fatal(err)
//	}
//
// Write to a file, falling back to stdout when the path is empty:
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatJSON, "version.json")
//	if c, ok := w.(serializer.Closer); ok {
//	    defer c.Close()
//	}
//	if err := w.Serialize(ctx, data); err != nil {
//	    log.Fatal(err)
//	}
//
// # Usage - Decoding
//
// Read from a file with automatic format detection:
//
//	ver, err := serializer.FromFile[version.Version]("version.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Read with a custom io.Reader:
//
//	r, err := serializer.NewReader(serializer.FormatYAML, strings.NewReader(yamlData))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	var ver version.Version
//	if err := r.Deserialize(&ver); err != nil {
//	    log.Fatal(err)
//	}
//
// # Format Detection
//
// File extension-based detection:
//   - .json → JSON
//   - .yaml, .yml → YAML
//   - .table, .txt → Table
//   - Other → JSON (default)
//
// Format detection is automatic when using:
//   - NewFileReaderAuto(path)
//   - FromFile[T](path)
//
// # Resource Management
//
// Always close readers and writers that manage files:
//
//	r, err := serializer.NewFileReader(serializer.FormatJSON, "version.json")
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//
// Stdout writers don't require closing but Close() is safe to call.
//
// # Error Handling
//
// Errors are returned when:
//   - Format is unknown or unsupported
//   - File cannot be opened or created
//   - Data cannot be marshaled/unmarshaled
//   - Table format used for deserialization
//
// All errors include context for debugging.
//
// # Integration
//
// Used throughout tagstamp for data I/O:
//   - pkg/cli - Command output formatting
//   - pkg/oci - Version artifact file generation
//   - pkg/server - HTTP response encoding
package serializer
