package sinks

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"github.com/arnavsurve/shipstep/pkg/log"
)

type ConsoleSink struct{}

func NewConsoleSink() *ConsoleSink {
	return &ConsoleSink{}
}

func (c *ConsoleSink) Write(event *log.LogEvent) error {
	step := getStringField(event.Fields, "step")
	source := getStringField(event.Fields, "source")
	tool := getStringField(event.Fields, "tool")
	toolLine := getStringField(event.Fields, "tool_line")
	errorMsg := getStringField(event.Fields, "error")
	levelStr := strings.ToUpper(event.Level.String())
	timestampStr := event.Timestamp.Format(time.RFC3339)

	levelColorMap := map[zerolog.Level]*color.Color{
		zerolog.DebugLevel: color.New(color.FgCyan),
		zerolog.InfoLevel:  color.New(color.FgGreen),
		zerolog.WarnLevel:  color.New(color.FgYellow),
		zerolog.ErrorLevel: color.New(color.FgRed),
		zerolog.FatalLevel: color.New(color.FgRed, color.Bold),
	}

	levelFmt := color.New(color.FgWhite).SprintFunc()
	if lc, ok := levelColorMap[event.Level]; ok {
		levelFmt = lc.SprintFunc()
	}

	stepLabel := step
	if stepLabel == "" {
		stepLabel = "pipeline"
	}

	prefix := fmt.Sprintf("[%s %s] %s: ",
		levelFmt(levelStr),
		color.New(color.FgWhite).Sprint(timestampStr),
		color.CyanString(stepLabel),
	)

	var output string
	switch {
	case toolLine != "" && tool != "":
		output = fmt.Sprintf("%s[%s/%s]: %s", prefix, color.BlueString(tool), strings.ToLower(source), toolLine)
	case errorMsg != "" && event.Message != "":
		output = fmt.Sprintf("%s%s: %s", prefix, event.Message, errorMsg)
	case errorMsg != "":
		output = fmt.Sprintf("%s%s", prefix, errorMsg)
	case event.Message != "":
		output = fmt.Sprintf("%s%s", prefix, event.Message)
	default:
		fieldsStr, _ := json.Marshal(event.Fields)
		output = fmt.Sprintf("%s%s", prefix, string(fieldsStr))
	}
	fmt.Println(output)
	return nil
}

// Helper to safely get a string field from LogEvent.Fields
func getStringField(fields map[string]any, key string) string {
	if val, ok := fields[key]; ok {
		if strVal, isStr := val.(string); isStr {
			return strVal
		}
	}
	return ""
}

func (c *ConsoleSink) Close() error {
	return nil // Console doesn't need closing
}
