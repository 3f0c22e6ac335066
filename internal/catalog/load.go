package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// Load reads a catalog override file and lays it over Default. JSON files
// may carry comments; .yaml and .yml files are read as YAML. Metrics are
// merged by key, every other section present in the file replaces the
// default section wholesale.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse is Load for in-memory content. ext selects the decoder.
func Parse(data []byte, ext string) (*Catalog, error) {
	doc, err := toJSON(data, ext)
	if err != nil {
		return nil, err
	}
	if err := validateSchema(doc); err != nil {
		return nil, err
	}

	var override Catalog
	if err := json.Unmarshal(doc, &override); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	c := Default()
	c.Metrics = mergeMetrics(c.Metrics, override.Metrics)
	if override.Charts != nil {
		c.Charts = override.Charts
	}
	if override.Comparison != nil {
		c.Comparison = override.Comparison
	}
	if override.GPUDeviceRows != nil {
		c.GPUDeviceRows = override.GPUDeviceRows
	}
	if err := Validate(c); err != nil {
		return nil, err
	}
	return c, nil
}

func toJSON(data []byte, ext string) ([]byte, error) {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse catalog yaml: %w", err)
		}
		if doc == nil {
			doc = map[string]any{}
		}
		out, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("convert catalog yaml: %w", err)
		}
		return out, nil
	default:
		return jsonc.ToJSON(data), nil
	}
}

func validateSchema(doc []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(catalogSchema),
		gojsonschema.NewBytesLoader(doc),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidCatalog, strings.Join(msgs, "; "))
}

func mergeMetrics(base, override []Metric) []Metric {
	if len(override) == 0 {
		return base
	}
	out := append([]Metric(nil), base...)
	index := make(map[string]int, len(out))
	for i, m := range out {
		index[m.Key] = i
	}
	for _, m := range override {
		if i, ok := index[m.Key]; ok {
			out[i] = m
			continue
		}
		index[m.Key] = len(out)
		out = append(out, m)
	}
	return out
}

const catalogSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "definitions": {
    "row": {
      "type": "object",
      "required": ["label", "field"],
      "additionalProperties": false,
      "properties": {
        "label": {"type": "string"},
        "field": {"type": "string", "minLength": 1},
        "unit": {"type": "string"},
        "decimals": {"type": "integer", "minimum": 0, "maximum": 10},
        "prefer": {"enum": ["", "max", "min"]},
        "criticalHigh": {"type": "number"},
        "criticalLow": {"type": "number"}
      }
    }
  },
  "properties": {
    "metrics": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["key", "candidates"],
        "additionalProperties": false,
        "properties": {
          "key": {"type": "string", "minLength": 1},
          "label": {"type": "string"},
          "unit": {"type": "string"},
          "candidates": {"type": "array", "minItems": 1, "items": {"type": "string"}},
          "bounds": {
            "type": "object",
            "required": ["min", "max"],
            "properties": {"min": {"type": "number"}, "max": {"type": "number"}}
          },
          "boundedStats": {"type": "boolean"}
        }
      }
    },
    "charts": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "metrics"],
        "additionalProperties": false,
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "deviceFanout": {"type": "boolean"},
          "metrics": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["label", "metric"],
              "properties": {
                "label": {"type": "string"},
                "metric": {"type": "string"},
                "unit": {"type": "string"}
              }
            }
          }
        }
      }
    },
    "comparison": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["title", "rows"],
        "properties": {
          "title": {"type": "string"},
          "rows": {"type": "array", "items": {"$ref": "#/definitions/row"}}
        }
      }
    },
    "gpuDeviceRows": {"type": "array", "items": {"$ref": "#/definitions/row"}}
  }
}`
