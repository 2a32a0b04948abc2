package logging

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
	"go.viam.com/test"
)

type BasicStruct struct {
	X int
	y string
}

// assertLogMatches will fuzzy match log lines. Notably, this checks the time format, but ignores
// the exact time. It expects a match on the caller's filename, but the exact line number can be
// wrong. Structured fields are compared as JSON objects.
func assertLogMatches(t *testing.T, actual *bytes.Buffer, expected string) {
	t.Helper()

	output, err := actual.ReadString('\n')
	test.That(t, err, test.ShouldBeNil)

	actualParts := strings.Split(strings.TrimSuffix(output, "\n"), "\t")
	expectedParts := strings.Split(expected, "\t")
	test.That(t, len(actualParts), test.ShouldEqual, len(expectedParts))
	// Use the length of the first string as a weak verification that the result looks like a date.
	test.That(t, len(actualParts[0]), test.ShouldEqual, len(expectedParts[0]))

	for i := 1; i < len(expectedParts); i++ {
		switch {
		case strings.Contains(expectedParts[i], ".go:"):
			actualFilename, actualLineNumber, found := strings.Cut(actualParts[i], ":")
			test.That(t, found, test.ShouldBeTrue)
			expectedFilename, _, _ := strings.Cut(expectedParts[i], ":")
			test.That(t, actualFilename, test.ShouldEqual, expectedFilename)
			_, err = strconv.Atoi(actualLineNumber)
			test.That(t, err, test.ShouldBeNil)
		case strings.HasPrefix(expectedParts[i], "{"):
			expectedMap := make(map[string]any)
			test.That(t, json.Unmarshal([]byte(expectedParts[i]), &expectedMap), test.ShouldBeNil)
			actualMap := make(map[string]any)
			test.That(t, json.Unmarshal([]byte(actualParts[i]), &actualMap), test.ShouldBeNil)
			test.That(t, actualMap, test.ShouldResemble, expectedMap)
		default:
			test.That(t, actualParts[i], test.ShouldEqual, expectedParts[i])
		}
	}
}

func newBufferLogger(level Level) (*impl, *bytes.Buffer) {
	notStdout := &bytes.Buffer{}
	return &impl{"", NewAtomicLevelAt(level), true, []Appender{NewWriterAppender(notStdout)}}, notStdout
}

func TestConsoleOutputFormat(t *testing.T) {
	logger, notStdout := newBufferLogger(DEBUG)

	logger.Infow("impl logw")
	assertLogMatches(t, notStdout,
		`2023-10-30T09:12:09.459Z	INFO	logging/impl_test.go:67	impl logw`)

	logger.Infow("impl logw", "key", "value")
	assertLogMatches(t, notStdout,
		`2023-10-30T13:19:45.806Z	INFO	logging/impl_test.go:71	impl logw	{"key":"value"}`)

	logger.Debugw("BasicStruct", "kernel", "erosion_cross", "BasicStruct", BasicStruct{1, "alice"})
	assertLogMatches(t, notStdout,
		`2023-10-30T13:20:47.129Z	DEBUG	logging/impl_test.go:75	BasicStruct	{"BasicStruct":{"X":1},"kernel":"erosion_cross"}`)

	logger.Warnw("unpaired", "dangling")
	assertLogMatches(t, notStdout,
		`2023-10-30T13:20:47.129Z	WARN	logging/impl_test.go:79	unpaired	{"dangling":"unpaired log key"}`)

	logger.Errorw("stringer key", spatialKey("extent"), "4x4x1")
	assertLogMatches(t, notStdout,
		`2023-10-30T13:20:47.129Z	ERROR	logging/impl_test.go:83	stringer key	{"extent":"4x4x1"}`)
}

type spatialKey string

func (k spatialKey) String() string { return string(k) }

func TestLevelFiltering(t *testing.T) {
	logger, notStdout := newBufferLogger(WARN)

	logger.Debugw("dropped")
	logger.Infow("dropped", "k", 1)
	test.That(t, notStdout.Len(), test.ShouldEqual, 0)

	logger.Errorw("kept")
	assertLogMatches(t, notStdout,
		`2023-10-30T09:12:09.459Z	ERROR	logging/impl_test.go:97	kept`)

	logger.SetLevel(DEBUG)
	test.That(t, logger.GetLevel(), test.ShouldEqual, DEBUG)
	logger.Debugw("now", "n", 1)
	assertLogMatches(t, notStdout,
		`2023-10-30T09:12:09.459Z	DEBUG	logging/impl_test.go:103	now	{"n":1}`)
}

func TestLoggerNameInOutput(t *testing.T) {
	logger, notStdout := newBufferLogger(INFO)
	logger.Sublogger("pipeline").Sublogger("count").Infow("operation finished", "count", 8)
	assertLogMatches(t, notStdout,
		`2023-10-30T09:12:09.459Z	INFO	pipeline.count	logging/impl_test.go:110	operation finished	{"count":8}`)
}

func TestSublogger(t *testing.T) {
	logger, observed := NewObservedTestLogger(t)
	sub := logger.Sublogger("pipeline").Sublogger("erode")
	sub.Infow("applied", "iterations", 2)

	entries := observed.All()
	test.That(t, entries, test.ShouldHaveLength, 1)
	test.That(t, entries[0].LoggerName, test.ShouldEqual, "pipeline.erode")
	test.That(t, entries[0].Message, test.ShouldEqual, "applied")
	test.That(t, entries[0].ContextMap()["iterations"], test.ShouldEqual, int64(2))

	// Subloggers copy the level at creation time and change independently.
	sub.SetLevel(ERROR)
	test.That(t, logger.GetLevel(), test.ShouldEqual, DEBUG)
	sub.Infow("dropped")
	logger.Infow("kept")
	test.That(t, observed.Len(), test.ShouldEqual, 2)
}

type failingSyncAppender struct{}

func (failingSyncAppender) Write(zapcore.Entry, []zapcore.Field) error { return nil }

func (failingSyncAppender) Sync() error { return errors.New("sync failed") }

func TestSyncCombinesErrors(t *testing.T) {
	logger := NewBlankLogger("sync")
	test.That(t, logger.Sync(), test.ShouldBeNil)

	logger.AddAppender(failingSyncAppender{})
	logger.AddAppender(failingSyncAppender{})
	err := logger.Sync()
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, strings.Count(err.Error(), "sync failed"), test.ShouldEqual, 2)
}

func TestLevelFromString(t *testing.T) {
	for _, tc := range []struct {
		in       string
		expected Level
	}{
		{"debug", DEBUG},
		{"INFO", INFO},
		{"Warning", WARN},
		{"error", ERROR},
	} {
		level, err := LevelFromString(tc.in)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, level, test.ShouldEqual, tc.expected)
	}

	_, err := LevelFromString("verbose")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "unknown log level")

	test.That(t, WARN.String(), test.ShouldEqual, "Warn")
	test.That(t, ERROR.AsZap(), test.ShouldEqual, zapcore.ErrorLevel)
}

func TestConstructorLevels(t *testing.T) {
	test.That(t, NewLogger("info").GetLevel(), test.ShouldEqual, INFO)
	test.That(t, NewDebugLogger("debug").GetLevel(), test.ShouldEqual, DEBUG)
	test.That(t, NewBlankLogger("blank").GetLevel(), test.ShouldEqual, DEBUG)

	logger := NewTestLogger(t)
	logger.Debugw("visible in test output", "voxels", 25)
	test.That(t, logger.Sync(), test.ShouldBeNil)
}
