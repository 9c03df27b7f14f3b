package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"sort"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"

	"conclave/domain"
	"conclave/domain/event"
	"conclave/projection"
	"conclave/services"
	"conclave/sink"
)

// simulate drives one full session from the outside, through the same
// service facade a real transport would use: two humans create, ready
// up and start, then vote whenever the voting phase opens, until the
// session reaches its verdict. Everything it knows about the game it
// learns from the broadcast stream.
func simulate(
	ctx context.Context,
	log *slog.Logger,
	service services.ISessionService,
	stream *sink.Stream,
	timeline *projection.Timeline,
) error {
	sessionID, aliceID, res := service.Create(domain.CreateSessionCommand{InitiatorName: "Alice"})
	if !res.OK {
		return fmt.Errorf("create rejected: %s", res.Reason)
	}
	bobID, res := service.Join(domain.JoinSessionCommand{Session: sessionID, Name: "Bob"})
	if !res.OK {
		return fmt.Errorf("join rejected: %s", res.Reason)
	}
	for _, id := range []string{aliceID, bobID} {
		if res := service.SetReady(domain.SetReadyCommand{Session: sessionID, Participant: id, Ready: true}); !res.OK {
			return fmt.Errorf("ready rejected: %s", res.Reason)
		}
	}
	if res := service.Start(domain.StartSessionCommand{Session: sessionID}); !res.OK {
		return fmt.Errorf("start rejected: %s", res.Reason)
	}

	humans := []string{aliceID, bobID}
	roster := map[string]string{}
	var order []string
	eliminated := map[string]bool{}
	lastVoted := 0

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case e := <-stream.Events:
			if e.SessionID() != sessionID {
				continue
			}
			switch evt := e.(type) {
			case event.ParticipantJoined:
				roster[evt.Participant] = evt.Name
				order = append(order, evt.Participant)
			case event.RoundStarted:
				_ = service.SendChat(domain.SendChatCommand{
					Session: sessionID,
					Author:  aliceID,
					Content: fmt.Sprintf("Round %d. Who do we trust?", evt.Number),
				})
			case event.RoundEnded:
				if evt.EliminatedID != nil {
					eliminated[*evt.EliminatedID] = true
				}
			case event.SessionState:
				if evt.Phase != domain.PhaseVoting.String() || evt.Round == lastVoted {
					continue
				}
				lastVoted = evt.Round
				for _, voter := range humans {
					if eliminated[voter] {
						continue
					}
					target := pickTarget(voter, order, eliminated)
					if target == "" {
						continue
					}
					if res := service.CastVote(domain.CastVoteCommand{Session: sessionID, Voter: voter, Target: target}); !res.OK {
						log.Warn("vote rejected", "voter", roster[voter], "reason", res.Reason)
					}
				}
			case event.SessionOver:
				printReveal(sessionID, roster, eliminated, evt, timeline)
				return nil
			}
		}
	}
}

// pickTarget votes like a confused human: a random living participant
// other than the voter.
func pickTarget(voter string, order []string, eliminated map[string]bool) string {
	var candidates []string
	for _, id := range order {
		if id != voter && !eliminated[id] {
			candidates = append(candidates, id)
		}
	}
	if len(candidates) == 0 {
		return ""
	}
	return candidates[rand.Intn(len(candidates))]
}

func printReveal(
	sessionID string,
	roster map[string]string,
	eliminated map[string]bool,
	over event.SessionOver,
	timeline *projection.Timeline,
) {
	header := fmt.Sprintf(" Verdict: %s victory ", over.Winner)
	fmt.Println(color.New(color.BgBlack, color.FgGreen).Render(header))

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Participant", "Role", "Fate"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	ids := make([]string, 0, len(over.Roles))
	for id := range over.Roles {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return roster[ids[i]] < roster[ids[j]] })

	for _, id := range ids {
		role := over.Roles[id]
		if role == domain.RoleConspirator.String() {
			role = color.Red.Render(role)
		} else {
			role = color.Green.Render(role)
		}
		fate := "survived"
		if eliminated[id] {
			fate = "eliminated"
		}
		table.Append([]string{roster[id], role, fate})
	}
	table.Render()

	if view, ok := timeline.View(sessionID); ok {
		fmt.Printf("\n%d messages exchanged, %d eliminations\n", len(view.Messages), len(view.Eliminated))
	}
}
