package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/s0up4200/lenscms/content"
)

var (
	contactReq  content.ContactRequest
	bookingReq  content.BookingRequest
	bookingDate string
)

// bookingDateLayout is the --date format: local date and time, minute precision
const bookingDateLayout = "2006-01-02 15:04"

// contactCmd submits the contact form
var contactCmd = &cobra.Command{
	Use:     "contact",
	Short:   "Submit the contact form",
	Example: `  lenscms contact --name "Kari Nordmann" --email kari@example.com --message "Do you stock Lindberg?"`,
	PreRunE: initializeApp,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := service.SubmitContact(cmd.Context(), contactReq); err != nil {
			return formError(err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Message sent")
		return nil
	},
}

// bookCmd requests an appointment
var bookCmd = &cobra.Command{
	Use:     "book",
	Short:   "Request an eye exam or fitting appointment",
	Example: `  lenscms book --name "Ola" --email ola@example.com --phone "+47 900 00 000" --location bergen-sentrum --service eye-exam --date "2025-09-01 10:30"`,
	PreRunE: initializeApp,
	RunE: func(cmd *cobra.Command, args []string) error {
		if bookingDate != "" {
			date, err := time.ParseInLocation(bookingDateLayout, bookingDate, time.Local)
			if err != nil {
				return fmt.Errorf("invalid --date (want %q): %w", bookingDateLayout, err)
			}
			bookingReq.Date = date
		}
		if err := service.RequestBooking(cmd.Context(), bookingReq); err != nil {
			return formError(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Booking requested for %s\n", bookingReq.Date.Format(bookingDateLayout))
		return nil
	},
}

// formError explains form failures that are not the user's input
func formError(err error) error {
	if errors.Is(err, content.ErrUnsupported) {
		return fmt.Errorf("%w: forms require content.backend strapi", err)
	}
	return err
}

func init() {
	contactCmd.Flags().StringVar(&contactReq.Name, "name", "", "your name")
	contactCmd.Flags().StringVar(&contactReq.Email, "email", "", "reply address")
	contactCmd.Flags().StringVar(&contactReq.Phone, "phone", "", "phone number")
	contactCmd.Flags().StringVar(&contactReq.Location, "location", "", "store slug the message is for")
	contactCmd.Flags().StringVar(&contactReq.Message, "message", "", "message")

	bookCmd.Flags().StringVar(&bookingReq.Name, "name", "", "your name")
	bookCmd.Flags().StringVar(&bookingReq.Email, "email", "", "confirmation address")
	bookCmd.Flags().StringVar(&bookingReq.Phone, "phone", "", "phone number")
	bookCmd.Flags().StringVar(&bookingReq.Location, "location", "", "store slug")
	bookCmd.Flags().StringVar(&bookingReq.Service, "service", "eye-exam", "eye-exam, contact-lenses or fitting")
	bookCmd.Flags().StringVar(&bookingDate, "date", "", "appointment time as \"YYYY-MM-DD HH:MM\"")
	bookCmd.Flags().StringVar(&bookingReq.Notes, "notes", "", "anything the optician should know")

	rootCmd.AddCommand(contactCmd, bookCmd)
}
