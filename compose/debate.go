package compose

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// DebateRound holds both sides' arguments for one round.
type DebateRound struct {
	Round int
	Pro   string
	Con   string
}

// DebateResult is the full transcript plus the judge's verdict.
type DebateResult struct {
	Rounds  []DebateRound
	Verdict string
}

// Debate runs an adversarial exchange: two steps argue opposing sides of a
// motion for a fixed number of rounds, then a judge step scores the full
// transcript. Within a round both sides run concurrently; from round two on,
// each side's input embeds the opponent's previous argument verbatim so it
// can rebut. Rounds always run to completion; there is no early convergence
// detection.
type Debate struct {
	name   string
	pro    Step
	con    Step
	judge  Step
	rounds int
}

// NewDebate creates a debate between pro and con, judged after the given
// number of rounds. A round count below one is treated as one.
func NewDebate(name string, pro, con, judge Step, rounds int) *Debate {
	if rounds < 1 {
		rounds = 1
	}
	return &Debate{name: name, pro: pro, con: con, judge: judge, rounds: rounds}
}

// Run argues the motion to completion and returns transcript and verdict.
func (d *Debate) Run(ctx context.Context, motion string) (*DebateResult, error) {
	result := &DebateResult{Rounds: make([]DebateRound, 0, d.rounds)}

	var prevPro, prevCon string
	for round := 1; round <= d.rounds; round++ {
		proInput := debatePrompt(motion, round, prevCon)
		conInput := debatePrompt(motion, round, prevPro)

		var proOut, conOut string
		var proErr, conErr error
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			proOut, proErr = d.pro(ctx, proInput)
		}()
		go func() {
			defer wg.Done()
			conOut, conErr = d.con(ctx, conInput)
		}()
		wg.Wait()

		if proErr != nil {
			return nil, fmt.Errorf("debate %s round %d pro side failed: %w", d.name, round, proErr)
		}
		if conErr != nil {
			return nil, fmt.Errorf("debate %s round %d con side failed: %w", d.name, round, conErr)
		}

		result.Rounds = append(result.Rounds, DebateRound{Round: round, Pro: proOut, Con: conOut})
		prevPro, prevCon = proOut, conOut
	}

	verdict, err := d.judge(ctx, d.TranscriptPrompt(motion, result.Rounds))
	if err != nil {
		return nil, fmt.Errorf("debate %s judge failed: %w", d.name, err)
	}
	result.Verdict = verdict

	return result, nil
}

// debatePrompt builds one side's input for a round. From round two on the
// opponent's previous argument is embedded verbatim for rebuttal.
func debatePrompt(motion string, round int, opponentPrev string) string {
	if round == 1 {
		return fmt.Sprintf("Motion: %s\n\nRound 1: present your opening argument.", motion)
	}
	return fmt.Sprintf(
		"Motion: %s\n\nRound %d: your opponent argued:\n%s\n\nRebut and strengthen your case.",
		motion, round, opponentPrev,
	)
}

// TranscriptPrompt renders the judge's input: every round's arguments in
// round order followed by the scoring instruction.
func (d *Debate) TranscriptPrompt(motion string, rounds []DebateRound) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Motion: %s\n", motion)
	for _, r := range rounds {
		fmt.Fprintf(&b, "\nRound %d, Pro:\n%s\n\nRound %d, Con:\n%s\n", r.Round, r.Pro, r.Round, r.Con)
	}
	b.WriteString("\nJudge the debate: weigh both sides and declare a winner with a short rationale.")
	return b.String()
}
