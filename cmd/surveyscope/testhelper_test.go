package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// tenRowSurvey has five respondents per age bracket, ten advice answers
// (the first too short to quote) and one score at each extreme.
const tenRowSurvey = `AgeRollup_Broad,Q1_Location_in_BC,Q1_Experience_with_AI,Q17_Advice_BC_Leaders_text_OE,Q17_Advice_BC_Leaders_text_OE_sentiment_percentage
18-34,Vancouver,Daily,Short,0.05
18-34,Vancouver,Daily,Invest in digital literacy for every community,0.95
18-34,Victoria,Never,"We need clear rules for how government agencies buy and deploy AI tools, with public reporting every single year",0.5
18-34,Kelowna,Daily,Protect privacy before scaling any AI system,0.4
18-34,Vancouver,Never,Fund local AI research and startups,0.6
35-54,Surrey,Daily,Keep humans in the loop for decisions,0.3
35-54,Victoria,Never,Train public servants on responsible AI,0.7
35-54,Burnaby,Daily,Be transparent about where AI is used,0.45
35-54,Vancouver,Never,Listen to rural communities too,0.55
35-54,Nanaimo,Daily,Move carefully but do not stand still,0.5
`

// writeFile writes content to name inside a fresh temporary directory.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// emptyConfig returns a config file with no settings, so tests do not
// pick up a .surveyscope from the machine running them.
func emptyConfig(t *testing.T) string {
	t.Helper()
	return writeFile(t, ".surveyscope", "{}\n")
}

// runRoot executes the root command with args and returns its output.
func runRoot(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err = cmd.Execute()
	return out.String(), errOut.String(), err
}
