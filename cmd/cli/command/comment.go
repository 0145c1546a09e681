package command

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var commentCmd = &cobra.Command{
	Use:     "comment",
	Aliases: []string{"comments"},
	Short:   "Comment management commands",
	Long:    `List, add and delete comments on a review`,
}

var listCommentsCmd = &cobra.Command{
	Use:   "list [review-id]",
	Short: "List comments on a review, newest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		comments, err := GetClient().ListComments(args[0])
		if err != nil {
			return fmt.Errorf("failed to list comments: %w", err)
		}
		if len(comments) == 0 {
			fmt.Println(muted("No comments yet."))
			return nil
		}
		for _, c := range comments {
			name := c.AuthorName
			if name == "" {
				name = c.Author
			}
			fmt.Printf("%s  %s  %s: %s\n", muted(c.ID.Hex()), muted(c.CreatedAt.Format(timeLayout)), name, c.Text)
		}
		return nil
	},
}

var addCommentCmd = &cobra.Command{
	Use:   "add [review-id] [text]",
	Short: "Comment on a review",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		comment, err := GetClient().AddComment(args[0], strings.Join(args[1:], " "), name)
		if err != nil {
			return fmt.Errorf("failed to add comment: %w", err)
		}
		fmt.Println(success("✓ Comment added: " + comment.ID.Hex()))
		return nil
	},
}

var deleteCommentCmd = &cobra.Command{
	Use:   "delete [review-id] [comment-id]",
	Short: "Delete your comment",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := GetClient().DeleteComment(args[0], args[1]); err != nil {
			return fmt.Errorf("failed to delete comment: %w", err)
		}
		fmt.Println(success("✓ Comment deleted."))
		return nil
	},
}

func init() {
	commentCmd.AddCommand(listCommentsCmd, addCommentCmd, deleteCommentCmd)
	addCommentCmd.Flags().String("name", "", "Display name")
}
