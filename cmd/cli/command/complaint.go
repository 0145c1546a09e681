package command

import (
	"fmt"

	"foodreview/internal/microservices/http-api/dto"

	"github.com/spf13/cobra"
)

var complaintCmd = &cobra.Command{
	Use:     "complaint",
	Aliases: []string{"complaints"},
	Short:   "File and track complaints",
}

var createComplaintCmd = &cobra.Command{
	Use:   "create",
	Short: "File a complaint about a restaurant",
	RunE: func(cmd *cobra.Command, args []string) error {
		var req dto.CreateComplaintRequest
		req.RestaurantName, _ = cmd.Flags().GetString("restaurant")
		req.ItemName, _ = cmd.Flags().GetString("item")
		req.Title, _ = cmd.Flags().GetString("title")
		req.Description, _ = cmd.Flags().GetString("description")
		req.PostID, _ = cmd.Flags().GetString("review")

		complaint, err := GetClient().CreateComplaint(&req)
		if err != nil {
			return fmt.Errorf("failed to file complaint: %w", err)
		}
		fmt.Println(success("✓ Complaint filed: " + complaint.ID))
		return nil
	},
}

var listComplaintsCmd = &cobra.Command{
	Use:   "list",
	Short: "List your complaints",
	RunE: func(cmd *cobra.Command, args []string) error {
		status, _ := cmd.Flags().GetString("status")
		search, _ := cmd.Flags().GetString("search")

		complaints, err := GetClient().ListComplaints(status, search)
		if err != nil {
			return fmt.Errorf("failed to list complaints: %w", err)
		}
		if len(complaints) == 0 {
			fmt.Println(muted("No complaints."))
			return nil
		}
		for _, c := range complaints {
			fmt.Printf("%s  [%s]  %s  %s\n", muted(c.ID), c.Status, heading(c.Title), c.RestaurantName)
			if c.AdminResponse != "" {
				fmt.Printf("    ↳ %s\n", c.AdminResponse)
			}
		}
		return nil
	},
}

func init() {
	complaintCmd.AddCommand(createComplaintCmd, listComplaintsCmd)

	createComplaintCmd.Flags().String("restaurant", "", "Restaurant name")
	createComplaintCmd.Flags().String("item", "", "Dish or item")
	createComplaintCmd.Flags().String("title", "", "Short summary")
	createComplaintCmd.Flags().String("description", "", "What happened")
	createComplaintCmd.Flags().String("review", "", "Related review id")
	createComplaintCmd.MarkFlagRequired("restaurant")
	createComplaintCmd.MarkFlagRequired("title")
	createComplaintCmd.MarkFlagRequired("description")

	listComplaintsCmd.Flags().String("status", "", "open, in_review or resolved")
	listComplaintsCmd.Flags().String("search", "", "Free text search")
}
