package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"omibyte.io/svdload/export"
	"omibyte.io/svdload/svd/svdtest"
)

func svdFile(t *testing.T, name string) string {
	t.Helper()
	src, err := svdtest.Source(name)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), name+".svd")
	if err := os.WriteFile(path, src, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	loadOpts.program, loadOpts.targets, loadOpts.namespace = "", "", ""
	loadOpts.emit, loadOpts.strict = nil, false
	infoTargets = ""

	var out bytes.Buffer
	svdloadCmd.SetOut(&out)
	svdloadCmd.SetErr(&out)
	svdloadCmd.SetArgs(args)
	err := svdloadCmd.Execute()
	return out.String(), err
}

func TestLoad(t *testing.T) {
	t.Setenv("SVDLOAD_EMIT", "")
	dir := t.TempDir()
	header := filepath.Join(dir, "rp2040.h")
	script := filepath.Join(dir, "rp2040.ld")

	out, err := run(t, "load", svdFile(t, "rp2040"), "--emit", "header="+header, "-e", "ld="+script)
	if err != nil {
		t.Fatalf("%v\n%s", err, out)
	}
	for _, s := range []string{
		"Loading SVD file...",
		"RP2040 detected, tweaks enabled.",
		"Generating memory blocks...",
		"\tUART0(0x40034000:0x40035000)",
		"\t\t(reusing UART)",
		"XIP_SSI\n\t\tNo registers.",
	} {
		if !strings.Contains(out, s) {
			t.Errorf("missing %q in:\n%s", s, out)
		}
	}

	data, err := os.ReadFile(header)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "#define UART0 ((UART_t *)0x40034000)") {
		t.Errorf("unexpected header:\n%s", data)
	}
	data, err = os.ReadFile(script)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "PROVIDE(SIO = 0xd0000000);") {
		t.Errorf("unexpected linker script:\n%s", data)
	}
}

func TestLoadEnvironment(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "out.ld")
	t.Setenv("SVDLOAD_EMIT", "ld="+script)
	t.Setenv("SVDLOAD_NAMESPACE", "Hardware")

	if out, err := run(t, "load", svdFile(t, "stm32")); err != nil {
		t.Fatalf("%v\n%s", err, out)
	}
	if _, err := os.Stat(script); err != nil {
		t.Error(err)
	}
}

func extraTargets(t *testing.T) string {
	t.Helper()
	table := filepath.Join(t.TempDir(), "extra.yaml")
	err := os.WriteFile(table, []byte(`
targets:
  - series: stm32x
    window: {min: 0x48000000, max: 0x48001000}
    aliases:
      - {suffix: bb, offset: 0x800, comment: bit band}
`), 0644)
	if err != nil {
		t.Fatal(err)
	}
	return table
}

func TestLoadTargets(t *testing.T) {
	t.Setenv("SVDLOAD_EMIT", "")
	table := extraTargets(t)

	out, err := run(t, "load", svdFile(t, "stm32"), "--targets", table)
	if err != nil {
		t.Fatalf("%v\n%s", err, out)
	}
	if !strings.Contains(out, "STM32X4 detected, tweaks enabled.") || !strings.Contains(out, "GPIOA_bb") {
		t.Errorf("extra targets not applied:\n%s", out)
	}
}

func TestExitCodes(t *testing.T) {
	t.Setenv("SVDLOAD_EMIT", "")
	tests := []struct {
		name     string
		args     []string
		expected int
	}{
		{"ok", []string{"regions", svdFile(t, "stm32")}, exitOK},
		{"missingFile", []string{"load", filepath.Join(t.TempDir(), "none.svd")}, exitFatal},
		{"bigEndian", []string{"load", svdFile(t, "bigendian")}, exitFatal},
		{"cycle", []string{"info", svdFile(t, "cycle")}, exitFatal},
		{"unknownFlag", []string{"load", "--bogus"}, exitUsage},
		{"tooManyArgs", []string{"regions", "a.svd", "b.svd"}, exitUsage},
		{"badEmit", []string{"load", svdFile(t, "stm32"), "--emit", "header"}, exitUsage},
		{"unknownExporter", []string{"load", svdFile(t, "stm32"), "--emit", "json=out.json"}, exitUsage},
	}
	for _, test := range tests {
		_, err := run(t, test.args...)
		if code := exitCode(err); code != test.expected {
			t.Errorf("%s: exit code %d, want %d (%v)", test.name, code, test.expected, err)
		}
	}
}

func TestRegions(t *testing.T) {
	out, err := run(t, "regions", svdFile(t, "stm32"))
	if err != nil {
		t.Fatal(err)
	}
	original, reduced, ok := strings.Cut(out, "Reduced regions:")
	if !ok {
		t.Fatalf("no reduced regions in:\n%s", out)
	}
	if !strings.Contains(original, "TIM3") || strings.Contains(original, "TIM2_TIM3") {
		t.Errorf("unexpected original regions:\n%s", original)
	}
	for _, name := range []string{"TIM2_TIM3", "GPIOA", "ADC1_ADC_COMMON"} {
		if !strings.Contains(reduced, name) {
			t.Errorf("missing %s in reduced regions:\n%s", name, reduced)
		}
	}
}

func TestInfo(t *testing.T) {
	out, err := run(t, "info", svdFile(t, "rp2040"))
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{"RP2040", "CM0PLUS", "rp2 (aliases: xor, set, clr)", "(1 without registers)"} {
		if !strings.Contains(out, s) {
			t.Errorf("missing %q in:\n%s", s, out)
		}
	}
}

func TestInfoTargets(t *testing.T) {
	table := extraTargets(t)

	t.Setenv("SVDLOAD_TARGETS", table)
	out, err := run(t, "info", svdFile(t, "stm32"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "stm32x (aliases: bb)") {
		t.Errorf("environment targets not applied:\n%s", out)
	}

	t.Setenv("SVDLOAD_TARGETS", "")
	if out, err = run(t, "info", svdFile(t, "stm32"), "--targets", table); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "stm32x (aliases: bb)") {
		t.Errorf("--targets not applied:\n%s", out)
	}
}

func TestParseEmits(t *testing.T) {
	emits, err := parseEmits([]string{"header=a.h", " ld=b.ld"}, "ghidra=c.py,ld=d.ld")
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, e := range emits {
		got = append(got, e.kind+":"+e.path)
	}
	if strings.Join(got, " ") != "header:a.h ld:b.ld ghidra:c.py ld:d.ld" {
		t.Errorf("got %v", got)
	}

	if _, err := parseEmits([]string{"=a.h"}, ""); err == nil {
		t.Error("expected an error for a missing kind")
	}
	if _, err := parseEmits(nil, "json=x"); !errors.Is(err, export.ErrUnknownExporter) {
		t.Errorf("expected ErrUnknownExporter, got %v", err)
	}
}
