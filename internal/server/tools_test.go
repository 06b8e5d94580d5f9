package server

import (
	"encoding/json"
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	expectedTools := []string{
		"image_load",
		"image_save",
		"image_apply",
		"image_script",
		"image_list",
		"image_info",
		"image_delete",
		"image_encode",
		"image_sample_color",
		"image_dominant_colors",
		"image_histogram",
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		if _, dup := toolMap[tool.Name]; dup {
			t.Errorf("duplicate tool %s", tool.Name)
		}
		toolMap[tool.Name] = tool
	}

	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
	if len(tools) != len(expectedTools) {
		t.Errorf("got %d tools, want %d", len(tools), len(expectedTools))
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema["type"] != "object" {
				t.Errorf("InputSchema type: got %v, want object", tool.InputSchema["type"])
			}
			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok {
				t.Fatal("InputSchema properties should be a map")
			}

			// Every required field must be a declared property.
			required, _ := tool.InputSchema["required"].([]string)
			for _, r := range required {
				if _, ok := props[r]; !ok {
					t.Errorf("required field %s is not a property", r)
				}
			}
		})
	}
}

func TestToolDefinitions_Enums(t *testing.T) {
	var apply Tool
	for _, tool := range GetToolDefinitions() {
		if tool.Name == "image_apply" {
			apply = tool
		}
	}
	props := apply.InputSchema["properties"].(map[string]interface{})

	ops := props["op"].(map[string]interface{})["enum"].([]string)
	if len(ops) != 11 {
		t.Errorf("op enum: got %v", ops)
	}
	components := props["component"].(map[string]interface{})["enum"].([]string)
	want := []string{"red", "green", "blue", "value", "intensity", "luma"}
	if len(components) != len(want) {
		t.Fatalf("component enum: got %v, want %v", components, want)
	}
	for i := range want {
		if components[i] != want[i] {
			t.Errorf("component enum[%d]: got %s, want %s", i, components[i], want[i])
		}
	}
}

func TestToolDefinitions_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(GetToolDefinitions())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded []map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	for _, tool := range decoded {
		if _, ok := tool["inputSchema"]; !ok {
			t.Errorf("tool %v lacks inputSchema", tool["name"])
		}
	}
}
