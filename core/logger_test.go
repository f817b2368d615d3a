package core

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/curtisnewbie/timeaxis/util/testutil"
	"github.com/sirupsen/logrus"
)

func TestFormatter(t *testing.T) {
	logrus.SetLevel(logrus.DebugLevel)

	logrus.Info("test message")
	determineIdealMethodName()
}

func determineIdealMethodName() {
	Infof("Whispering")
	Debugf("Whispering ???? :D")
	ComponentLogger("adapter").Info("With component")
}

func TestFormatterLine(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	l.SetFormatter(CustomFormatter())
	l.WithField(componentField, "axis").WithField(callerField, "axis.Ticks").Warn("too many ticks")

	line := buf.String()
	t.Log(line)
	testutil.TestTrue(t, strings.Contains(line, " WARN  [axis      ]  axis.Ticks"))
	testutil.TestTrue(t, strings.HasSuffix(line, " : too many ticks\n"))
}

func TestGetShortFnName(t *testing.T) {
	if v := getShortFnName("shortFunc"); v != "shortFunc" {
		t.Fatal(v)
	}

	if v := getShortFnName("pck.shortFunc"); v != "pck.shortFunc" {
		t.Fatal(v)
	}

	if v := getShortFnName("vvvv/pck.shortFunc"); v != "pck.shortFunc" {
		t.Fatal(v)
	}

	if v := getShortFnName("gggg/vvvv/pck.shortFunc"); v != "pck.shortFunc" {
		t.Fatal(v)
	}
}

func TestParseLogLevel(t *testing.T) {
	lv, ok := ParseLogLevel(" debug ")
	testutil.TestTrue(t, ok)
	testutil.TestEqual(t, logrus.DebugLevel, lv)

	_, ok = ParseLogLevel("verbose")
	testutil.TestFalse(t, ok)
}

func TestConfigureLogging(t *testing.T) {
	defer logrus.SetOutput(loggerOut)

	conf := NewAppConfig()
	conf.SetProp(PropLoggingLevel, "warn")
	c, err := ConfigureLogging(conf)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	testutil.TestEqual(t, logrus.WarnLevel, logrus.GetLevel())

	conf.SetProp(PropLoggingRollingFile, filepath.Join(t.TempDir(), "timeaxis.log"))
	conf.SetProp(PropLoggingLevel, "info")
	c2, err := ConfigureLogging(conf)
	if err != nil {
		t.Fatal(err)
	}
	Infof("written to rolling file")
	testutil.TestNoErr(t, c2.Close())

	conf.SetProp(PropLoggingLevel, "loud")
	if _, err := ConfigureLogging(conf); err == nil {
		t.Fatal("should reject unknown level")
	}
}
