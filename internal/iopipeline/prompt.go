package iopipeline

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gnames/gn"

	"github.com/happidata/whr/pkg/match"
	"github.com/happidata/whr/pkg/resolve"
	"github.com/happidata/whr/pkg/session"
)

// reviewLoop prompts the user for each unmatched country and resubmits
// until the resolver commits. A rejected submission keeps the session
// in awaiting-input and the loop starts over with the collision report
// on screen.
func (p *pipeline) reviewLoop(sess *session.Session) error {
	reader := bufio.NewReader(os.Stdin)
	for sess.NeedsInput() {
		choices := make(map[string]string, len(sess.Match.Unmatched))
		for _, u := range sess.Match.Unmatched {
			choice, err := promptOne(reader, u.Raw, u.Suggestions)
			if err != nil {
				return err
			}
			choices[u.Raw] = choice
		}
		collisions, err := sess.Submit(choices)
		if err != nil {
			return ChoicesError(err)
		}
		for _, c := range collisions {
			gn.Warn(
				"Countries <em>%s</em> cannot all map to <em>%s</em>, try again",
				strings.Join(c.Raws, ", "), c.Canonical,
			)
		}
	}
	return nil
}

func promptOne(
	reader *bufio.Reader,
	raw string,
	suggestions []match.Suggestion,
) (string, error) {
	fmt.Printf("\nNo confident match for %q. Candidates:\n", raw)
	for i, s := range suggestions {
		fmt.Printf("  %d) %s (score %d)\n", i+1, s.Name, s.Score)
	}
	keepIdx := len(suggestions) + 1
	fmt.Printf("  %d) keep %q as is\n", keepIdx, raw)

	for {
		fmt.Printf("Your choice [1-%d]: ", keepIdx)
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", ChoicesError(err)
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil || n < 1 || n > keepIdx {
			fmt.Println("Please enter one of the listed numbers.")
			continue
		}
		if n == keepIdx {
			return resolve.KeepOriginal, nil
		}
		return suggestions[n-1].Name, nil
	}
}
