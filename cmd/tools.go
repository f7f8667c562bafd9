package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Vovarama1992/aigizi-wa-bridge/internal/relay"
)

func newAskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question>",
		Short: "Generate one AI reply and print it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newAppFromViper()
			if err != nil {
				return err
			}

			reply := a.generator.Generate(cmd.Context(), strings.Join(args, " "))
			fmt.Fprintln(cmd.OutOrStdout(), reply.Text)
			if reply.Fallback {
				return fmt.Errorf("generation failed: %w", reply.Err)
			}
			return nil
		},
	}
}

func newSendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send <recipient> <message>",
		Short: "Send one message through the gateway",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newAppFromViper()
			if err != nil {
				return err
			}

			res := a.outbound.Send(cmd.Context(), args[0], strings.Join(args[1:], " "))
			if err := writeJSON(cmd, res); err != nil {
				return err
			}
			if !res.Delivered {
				return fmt.Errorf("not delivered: %s", res.ErrorDetail)
			}
			return nil
		},
	}
}

type classifyOutput struct {
	Intent    string       `json:"intent"`
	Detail    relay.Intent `json:"detail"`
	Recipient string       `json:"recipient"`
}

func newClassifyCmd() *cobra.Command {
	var (
		sender  string
		isGroup bool
		groupID string
	)

	cmd := &cobra.Command{
		Use:   "classify <message>",
		Short: "Show how a message would be routed, without calling any upstream",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ev := relay.InboundEvent{
				Sender:     sender,
				RawMessage: strings.Join(args, " "),
				IsGroup:    isGroup,
			}
			if isGroup {
				ev.GroupID = groupID
			}
			if err := ev.Validate(); err != nil {
				return err
			}

			in := relay.Classify(ev)
			return writeJSON(cmd, classifyOutput{
				Intent:    in.Name(),
				Detail:    in,
				Recipient: ev.Recipient(),
			})
		},
	}

	cmd.Flags().StringVar(&sender, "sender", "6280000000000", "Sender number.")
	cmd.Flags().BoolVar(&isGroup, "group", false, "Treat the message as a group message.")
	cmd.Flags().StringVar(&groupID, "group-id", "", "Group id for group messages.")

	return cmd
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
