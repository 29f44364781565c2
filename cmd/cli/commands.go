package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
)

var (
	cancelReason string
	forceSettle  bool
	createTee    string
	createCourse string
	createHoles  int
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(teeSheetCmd)
	createCmd.Flags().StringVar(&createTee, "tee", "", "Tee time (RFC3339, required)")
	createCmd.Flags().StringVar(&createCourse, "course", "main", "Course id")
	createCmd.Flags().IntVar(&createHoles, "holes", 18, "Holes booked (9 or 18)")
	createCmd.MarkFlagRequired("tee")
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(confirmCmd)
	rootCmd.AddCommand(checkInCmd)
	cancelCmd.Flags().StringVar(&cancelReason, "reason", "", "Why the booking is cancelled")
	rootCmd.AddCommand(cancelCmd)
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(folioCmd)
	settleCmd.Flags().BoolVar(&forceSettle, "force", false, "Settle even with an outstanding balance")
	rootCmd.AddCommand(settleCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var teeSheetCmd = &cobra.Command{
	Use:   "tee-sheet [date]",
	Short: "List the bookings for a date (YYYY-MM-DD, defaults to today)",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/tee-sheet"
		if len(args) > 0 {
			endpoint += "?date=" + url.QueryEscape(args[0])
		}
		return performGetRequest(endpoint)
	},
}

var createCmd = &cobra.Command{
	Use:   "create <date> <playersJSON>",
	Short: "Create a pending booking on the tee sheet",
	Long: `Create a pending booking. The date is YYYY-MM-DD and the players are a JSON
array, e.g. '[{"name":"Tanaka","identity_code":"MEMBER"}]'.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := fmt.Sprintf(`{"date":%q,"tee_time":%q,"course_id":%q,"holes_booked":%d,"players":%s}`,
			args[0], createTee, createCourse, createHoles, args[1])
		return performPostRequest("/bookings/create", body)
	},
}

var confirmCmd = &cobra.Command{
	Use:   "confirm <bookingID>",
	Short: "Confirm a pending booking",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/bookings/confirm?id="+url.QueryEscape(args[0]), "")
	},
}

var checkInCmd = &cobra.Command{
	Use:   "check-in <bookingID> [resourcesJSON]",
	Short: "Check a party in, optionally binding resources",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := ""
		if len(args) > 1 {
			body = fmt.Sprintf(`{"resources":%s}`, args[1])
		}
		return performPostRequest("/bookings/check-in?id="+url.QueryEscape(args[0]), body)
	},
}

var cancelCmd = &cobra.Command{
	Use:   "cancel <bookingID>",
	Short: "Cancel a pending or confirmed booking",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/bookings/cancel?id=" + url.QueryEscape(args[0])
		if cancelReason != "" {
			endpoint += "&reason=" + url.QueryEscape(cancelReason)
		}
		return performPostRequest(endpoint, "")
	},
}

var completeCmd = &cobra.Command{
	Use:   "complete <bookingID>",
	Short: "Complete a checked-in booking (requires a settled folio)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/bookings/complete?id="+url.QueryEscape(args[0]), "")
	},
}

var folioCmd = &cobra.Command{
	Use:   "folio <bookingID>",
	Short: "Show the folio attached to a booking",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/folios/get?bookingID=" + url.QueryEscape(args[0]))
	},
}

var settleCmd = &cobra.Command{
	Use:   "settle <folioID>",
	Short: "Settle a folio",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/folios/settle?id=" + url.QueryEscape(args[0])
		if forceSettle {
			endpoint += "&force=true"
		}
		return performPostRequest(endpoint, "")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func performPostRequest(endpoint, body string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
