package command

import (
	"fmt"
	"strings"

	"foodreview/internal/microservices/http-api/dto"

	"github.com/fatih/color"
)

var (
	success = color.New(color.FgGreen).SprintFunc()
	failure = color.New(color.FgRed).SprintFunc()
	heading = color.New(color.FgCyan, color.Bold).SprintFunc()
	muted   = color.New(color.FgHiBlack).SprintFunc()
	warn    = color.New(color.FgYellow).SprintFunc()
)

const timeLayout = "2006-01-02 15:04"

func printReviewLine(r dto.ReviewResponse) {
	rating := "-"
	if r.Rating != nil {
		rating = fmt.Sprintf("%.1f", *r.Rating)
	}
	fmt.Printf("%s  %s  ★ %s  👍 %d  👎 %d  %s\n",
		muted(r.ID), heading(r.Title), rating, r.Likes, r.Dislikes, muted(strings.Join(nonEmpty(r.Cuisine, r.Area, r.DiningStyle), " · ")))
}

func printReview(r dto.ReviewResponse) {
	fmt.Println(heading(r.Title))
	fmt.Printf("ID: %s\n", r.ID)
	if r.Rating != nil {
		fmt.Printf("Rating: %.1f\n", *r.Rating)
	}
	if facets := nonEmpty(r.Cuisine, r.Area, r.DiningStyle, r.Price); len(facets) > 0 {
		fmt.Printf("Facets: %s\n", strings.Join(facets, " · "))
	}
	author := r.AuthorName
	if author == "" {
		author = r.AuthorID
	}
	fmt.Printf("By: %s on %s\n", author, r.CreatedAt.Format(timeLayout))
	fmt.Printf("Likes: %d  Dislikes: %d  Reports: %d\n", r.Likes, r.Dislikes, r.ReportsCount)
	fmt.Println()
	fmt.Println(r.Description)

	if len(r.Comments) > 0 {
		fmt.Println()
		fmt.Println(heading(fmt.Sprintf("Comments (%d)", len(r.Comments))))
		for _, c := range r.Comments {
			name := c.AuthorName
			if name == "" {
				name = c.Author
			}
			fmt.Printf("  %s %s: %s\n", muted(c.CreatedAt.Format(timeLayout)), name, c.Text)
		}
	}
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
