package command

import (
	"fmt"
	"strings"

	"foodreview/cmd/cli/command/client"
	"foodreview/internal/microservices/http-api/dto"

	"github.com/spf13/cobra"
)

var reviewCmd = &cobra.Command{
	Use:     "review",
	Aliases: []string{"reviews"},
	Short:   "Browse, react to and report reviews",
}

var listReviewsCmd = &cobra.Command{
	Use:   "list",
	Short: "List reviews",
	RunE: func(cmd *cobra.Command, args []string) error {
		var q client.ReviewQuery
		q.Search, _ = cmd.Flags().GetString("search")
		q.Cuisine, _ = cmd.Flags().GetStringSlice("cuisine")
		q.Area, _ = cmd.Flags().GetStringSlice("area")
		q.DiningStyle, _ = cmd.Flags().GetStringSlice("style")
		q.Sort, _ = cmd.Flags().GetString("sort")
		q.Page, _ = cmd.Flags().GetInt("page")
		q.PageSize, _ = cmd.Flags().GetInt("page-size")

		reviews, total, err := GetClient().ListReviews(q)
		if err != nil {
			return fmt.Errorf("failed to list reviews: %w", err)
		}
		if len(reviews) == 0 {
			fmt.Println(muted("No reviews found."))
			return nil
		}
		for _, r := range reviews {
			printReviewLine(r)
		}
		fmt.Println(muted(fmt.Sprintf("%d of %d reviews", len(reviews), total)))
		return nil
	},
}

var getReviewCmd = &cobra.Command{
	Use:   "get [review-id]",
	Short: "Show one review with its comments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		review, err := GetClient().GetReview(args[0])
		if err != nil {
			return fmt.Errorf("failed to get review: %w", err)
		}
		printReview(*review)
		return nil
	},
}

var createReviewCmd = &cobra.Command{
	Use:   "create",
	Short: "Post a new review",
	RunE: func(cmd *cobra.Command, args []string) error {
		var req dto.CreateReviewRequest
		req.Title, _ = cmd.Flags().GetString("title")
		req.Description, _ = cmd.Flags().GetString("description")
		req.Cuisine, _ = cmd.Flags().GetString("cuisine")
		req.Area, _ = cmd.Flags().GetString("area")
		req.DiningStyle, _ = cmd.Flags().GetString("style")
		req.Price, _ = cmd.Flags().GetString("price")
		req.Tags, _ = cmd.Flags().GetStringSlice("tags")
		req.AuthorName, _ = cmd.Flags().GetString("name")
		if cmd.Flags().Changed("rating") {
			rating, _ := cmd.Flags().GetFloat64("rating")
			req.Rating = &rating
		}

		review, err := GetClient().CreateReview(&req)
		if err != nil {
			return fmt.Errorf("failed to create review: %w", err)
		}
		fmt.Println(success("✓ Review posted: " + review.ID))
		return nil
	},
}

var likeCmd = &cobra.Command{
	Use:   "like [review-id]",
	Short: "Toggle your like on a review",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := GetClient().Like(args[0])
		if err != nil {
			return fmt.Errorf("failed to like review: %w", err)
		}
		printReaction(res)
		return nil
	},
}

var dislikeCmd = &cobra.Command{
	Use:   "dislike [review-id]",
	Short: "Toggle your dislike on a review",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := GetClient().Dislike(args[0])
		if err != nil {
			return fmt.Errorf("failed to dislike review: %w", err)
		}
		printReaction(res)
		return nil
	},
}

var reportCmd = &cobra.Command{
	Use:   "report [review-id] [reason]",
	Short: "Report a review (spam, abusive, off-topic, plagiarism, advertising, other)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := GetClient().Report(args[0], strings.ToLower(args[1]))
		if err != nil {
			return fmt.Errorf("failed to report review: %w", err)
		}
		fmt.Println(success(fmt.Sprintf("✓ Reported. The review now has %d report(s).", res.ReportsCount)))
		if res.Removed {
			fmt.Println(warn("The review is hidden pending moderation."))
		}
		return nil
	},
}

func printReaction(res *dto.ReactionResponse) {
	state := "none"
	switch {
	case res.Liked:
		state = "liked"
	case res.Disliked:
		state = "disliked"
	}
	fmt.Printf("%s  👍 %d  👎 %d\n", success("✓ "+state), res.LikesCount, res.DislikesCount)
}

func init() {
	reviewCmd.AddCommand(listReviewsCmd, getReviewCmd, createReviewCmd, likeCmd, dislikeCmd, reportCmd)

	listReviewsCmd.Flags().StringP("search", "s", "", "Search title, description, cuisine, area and tags")
	listReviewsCmd.Flags().StringSlice("cuisine", nil, "Filter by cuisine (repeatable)")
	listReviewsCmd.Flags().StringSlice("area", nil, "Filter by area (repeatable)")
	listReviewsCmd.Flags().StringSlice("style", nil, "Filter by dining style (repeatable)")
	listReviewsCmd.Flags().String("sort", "", "recent, rating_desc, rating_asc, price_low or price_high")
	listReviewsCmd.Flags().Int("page", 1, "Page number")
	listReviewsCmd.Flags().Int("page-size", 20, "Results per page")

	createReviewCmd.Flags().String("title", "", "Review title")
	createReviewCmd.Flags().String("description", "", "Review body")
	createReviewCmd.Flags().Float64("rating", 0, "Rating from 1 to 5")
	createReviewCmd.Flags().String("cuisine", "", "Cuisine")
	createReviewCmd.Flags().String("area", "", "Area")
	createReviewCmd.Flags().String("style", "", "Dining style")
	createReviewCmd.Flags().String("price", "", "Price range")
	createReviewCmd.Flags().StringSlice("tags", nil, "Tags")
	createReviewCmd.Flags().String("name", "", "Display name")
	createReviewCmd.MarkFlagRequired("title")
	createReviewCmd.MarkFlagRequired("description")
}
