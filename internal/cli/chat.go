package cli

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todochat/internal/form"
	"github.com/idilsaglam/todochat/internal/model"
	"github.com/idilsaglam/todochat/internal/store"
	"github.com/idilsaglam/todochat/internal/ui"
)

func newChatCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Use the chat room",
		Example: `  todochat chat join General
  todochat chat send --user User2 "hello there"
  todochat chat log --as User1`,
	}
	cmd.AddCommand(newChatJoinCmd(o), newChatSendCmd(o), newChatLogCmd(o), newChatRemoveCmd(o))
	return cmd
}

func newChatJoinCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "join [room]",
		Short: "Join a room, replacing the current one and its history",
		Args:  maxArgs(1, "[room]"),
		RunE: o.withApp(func(a *App, cmd *cobra.Command, args []string) error {
			name := a.Config.Chat.DefaultRoom
			if len(args) == 1 {
				n, err := form.RoomName(args[0])
				if err != nil {
					return usagef("join: %v", err)
				}
				name = n
			}
			a.Store.Dispatch(store.JoinRoom{Room: model.NewRoom(name)})
			ui.OK(cmd.OutOrStdout(), "joined "+name)
			return nil
		}),
	}
}

func newChatSendCmd(o *rootOptions) *cobra.Command {
	var user string
	cmd := &cobra.Command{
		Use:   "send <text...>",
		Short: "Send a message to the current room",
		Args:  minArgs(1, "[--user name] <text...>"),
		RunE: o.withApp(func(a *App, cmd *cobra.Command, args []string) error {
			content, err := form.MessageContent(strings.Join(args, " "))
			if err != nil {
				return usagef("send: %v", err)
			}
			if user == "" {
				user = a.Config.Chat.Users[0]
			}
			if !slices.Contains(a.Config.Chat.Users, user) {
				return usagef("send: unknown user %q (configured: %s)", user, strings.Join(a.Config.Chat.Users, ", "))
			}
			room := a.Store.CurrentRoom()
			if room == nil {
				return usagef("send: not in a room; run `todochat chat join` first")
			}
			msg := model.NewMessage(user, content, room.RoomName, time.Now())
			a.Store.Dispatch(store.SendMessage{Message: msg})
			ui.OK(cmd.OutOrStdout(), "sent "+msg.ID)
			return nil
		}),
	}
	cmd.Flags().StringVarP(&user, "user", "u", "", "Send as this user (default: first configured user)")
	return cmd
}

func newChatLogCmd(o *rootOptions) *cobra.Command {
	var as string
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Print the current room's messages",
		Args:  exactArgs(0, "[--as name]"),
		RunE: o.withApp(func(a *App, cmd *cobra.Command, args []string) error {
			if as == "" {
				as = a.Config.Chat.Users[0]
			}
			ui.Panel(cmd.OutOrStdout(), ui.MessageLines(a.Store.CurrentRoom(), as))
			return nil
		}),
	}
	cmd.Flags().StringVar(&as, "as", "", "Highlight messages from this user")
	return cmd
}

func newChatRemoveCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <message-id>",
		Short: "Delete a message from the current room",
		Args:  exactArgs(1, "<message-id>"),
		RunE: o.withApp(func(a *App, cmd *cobra.Command, args []string) error {
			if a.Store.Dispatch(store.DeleteMessage{ID: args[0]}) == store.Ignored {
				return usagef("rm: no message with id %s", args[0])
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("deleted %s", args[0]))
			return nil
		}),
	}
}
