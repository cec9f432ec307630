package review

import (
	"strings"
)

// outputContract is the strict reply grammar sent with every prompt. It is
// the wire contract between the model and ParseIssues: the parser accepts
// exactly the block format described here.
const outputContract = `## Output Format

Report each problem as a separate block using exactly these labeled fields,
one field per line, blocks separated by a line containing only three dashes:

Issue: <one-sentence description of the problem>
File: <file path from the diff>
Line Number: <line number, range, or "around line N">
Code: <the offending code snippet>
Severity: <critical|high|medium|low>
Confidence: <0-100>
Review Type: <the review mode that found this issue>
Suggestion: <concrete fix>

Example:

Issue: User input is passed directly to a shell command
File: scripts/deploy.py
Line Number: 42
Code: os.system(user_input)
Severity: high
Confidence: 90
Review Type: security
Suggestion: Use subprocess.run with a list of arguments instead of os.system

---

If the diff contains no issues, reply with exactly: No issues found.`

// BuildPrompt assembles the final payload sent to a provider: the combined
// mode instructions, the output-format contract, and the diff verbatim.
// Truncation is the diff source's responsibility, not handled here.
func BuildPrompt(instructions, diff string) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(instructions))
	b.WriteString("\n\n---\n\n")
	b.WriteString(outputContract)
	b.WriteString("\n\n---\n\n")
	b.WriteString("## Git Diff\n\n```diff\n")
	b.WriteString(diff)
	if !strings.HasSuffix(diff, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("```\n")
	return b.String()
}

// OutputContract returns the reply grammar section of the prompt, exposed
// for tests that verify the prompt/parser round trip.
func OutputContract() string {
	return outputContract
}
