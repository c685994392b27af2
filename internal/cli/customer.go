package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"park-system/internal/models"
)

func (a *App) customerMenu(ctx context.Context, user *models.User) {
	for {
		a.prompt.Println("\n--- Customer Menu ---")
		a.prompt.Println("1. View Parks & Buy Tickets")
		a.prompt.Println("2. Browse Merchandise")
		a.prompt.Println("3. Checkout Cart")
		a.prompt.Println("4. My Account / Refunds")
		a.prompt.Println("5. Contact Support")
		a.prompt.Println("6. Logout")

		switch a.prompt.Line("Choice: ") {
		case "1":
			a.buyTickets(ctx, user)
		case "2":
			a.browseMerchandise(ctx, user)
		case "3":
			a.checkoutCart(ctx, user)
		case "4":
			a.accountMenu(ctx, user)
		case "5":
			a.contactSupport(ctx, user)
		case "6", "":
			a.auth.Logout(ctx, user)
			return
		default:
			a.prompt.Println("Invalid choice.")
		}
	}
}

func (a *App) buyTickets(ctx context.Context, user *models.User) {
	parks, err := a.catalog.ListParks(ctx)
	if err != nil {
		a.prompt.Printf("Failed to load parks: %v\n", err)
		return
	}
	if len(parks) == 0 {
		a.prompt.Println("\nNo parks available.")
		return
	}

	a.prompt.Println("\nSelect Park:")
	for i, p := range parks {
		a.prompt.Printf("%d. %s\n", i+1, p.Name)
		a.prompt.Printf("   Location: %s\n", p.Location)
		a.prompt.Printf("   Description: %s\n", p.Description)
		a.prompt.Printf("   Max capacity: %d\n", p.MaxCapacity)
		if p.HasTicketPrice() {
			a.prompt.Printf("   Ticket price: %s\n", FormatMoney(*p.TicketPrice))
		} else {
			a.prompt.Println("   Ticket price: NOT SET (contact admin)")
		}
	}
	a.prompt.Println("\n0. Back")

	idx, ok := a.prompt.Select("Select (number, 0 to go back): ", len(parks))
	if !ok {
		return
	}
	park := parks[idx]

	visitDate := a.futureDate("Visit Date (YYYY-MM-DD): ")
	qty := a.prompt.PositiveInt("Quantity: ")

	_, err = a.checkout.AddTicketItem(ctx, user.UserID, park.ParkID, visitDate, qty)
	switch {
	case err == nil:
		a.prompt.Printf("\nAdded %d tickets for %s on %s to cart for checkout.\n", qty, park.Name, visitDate)
	case errors.Is(err, models.ErrPriceNotSet):
		a.prompt.Println("Cannot add tickets: ticket price for this park is not set. Contact an admin.")
	case errors.Is(err, models.ErrScheduleFull):
		a.prompt.Printf("Cannot add %d tickets. Not enough spots remain for %s considering your cart.\n", qty, visitDate)
	default:
		a.prompt.Printf("Failed to add tickets: %v\n", err)
	}
}

// futureDate prompts until the customer enters a valid date after today.
func (a *App) futureDate(label string) string {
	for {
		value := a.prompt.Date(label)
		if value == "" {
			return ""
		}
		d, _ := time.Parse(models.VisitDateLayout, value)
		if !d.After(time.Now().Truncate(24 * time.Hour)) {
			a.prompt.Println("Please choose a date after today.")
			continue
		}
		return value
	}
}

func (a *App) browseMerchandise(ctx context.Context, user *models.User) {
	items, err := a.catalog.ListMerchandise(ctx)
	if err != nil {
		a.prompt.Printf("Failed to load merchandise: %v\n", err)
		return
	}
	if len(items) == 0 {
		a.prompt.Println("No merchandise available.")
		return
	}

	a.prompt.Println("\nMerchandise:")
	for i, m := range items {
		a.prompt.Printf("%d. %s (SKU: %s) - Price: %s - Stock: %d\n", i+1, m.Name, m.SKU, FormatMoney(m.Price), m.StockQuantity)
	}
	a.prompt.Println("\n0. Back")

	idx, ok := a.prompt.Select("Select (number, 0 to go back): ", len(items))
	if !ok {
		return
	}
	item := items[idx]

	qty := a.prompt.PositiveInt("Quantity: ")

	_, err = a.checkout.AddMerchItem(ctx, user.UserID, item.SKU, qty)
	switch {
	case err == nil:
		a.prompt.Println("\nItem(s) added to cart for checkout.")
	case errors.Is(err, models.ErrOutOfStock):
		a.prompt.Println("Low stock. Not enough items available considering your cart.")
	default:
		a.prompt.Printf("Failed to add item: %v\n", err)
	}
}

func (a *App) checkoutCart(ctx context.Context, user *models.User) {
	cart, err := a.checkout.GetCart(ctx, user.UserID)
	if err != nil {
		a.prompt.Printf("Failed to load cart: %v\n", err)
		return
	}
	if cart.IsEmpty() {
		a.prompt.Println("\nCart is empty.")
		return
	}

	a.prompt.Println("\n=== Cart Items ===")
	for i, item := range cart.Items {
		label := item.Name
		if item.Kind == models.ItemTicket {
			label = fmt.Sprintf("%s (%s)", item.Name, item.VisitDate)
		}
		a.prompt.Printf("%d. %s - Qty: %d @ %s = %s\n", i+1, label, item.Quantity, FormatMoney(item.UnitPrice), FormatMoney(item.Subtotal()))
	}
	a.prompt.Printf("Total: %s\n", FormatMoney(cart.Total()))

	a.prompt.Println("\n1. Confirm checkout")
	a.prompt.Println("2. Remove an item")
	a.prompt.Println("0. Back")

	switch a.prompt.Line("Select (number, 0 to go back): ") {
	case "1":
		order, err := a.checkout.Checkout(ctx, user.UserID)
		if err != nil {
			a.prompt.Printf("Checkout failed: %v\n", err)
			return
		}
		a.prompt.Println("\nCheckout Complete!")
		a.prompt.Printf("Order %s - Total: %s\n", order.OrderNumber, FormatMoney(order.TotalAmount))
	case "2":
		idx, ok := a.prompt.Select("Remove which item (number, 0 to go back): ", len(cart.Items))
		if !ok {
			return
		}
		item := cart.Items[idx]
		if _, err := a.checkout.RemoveItem(ctx, user.UserID, item.Kind, item.Ref, item.VisitDate); err != nil {
			a.prompt.Printf("Failed to remove item: %v\n", err)
			return
		}
		a.prompt.Println("Item removed.")
	}
}

func (a *App) accountMenu(ctx context.Context, user *models.User) {
	a.prompt.Println("\n--- My Account ---")
	a.prompt.Println("1. Manage Bookings")
	a.prompt.Println("2. View Tickets")
	a.prompt.Println("3. Edit Demographics / Profile")
	a.prompt.Println("4. Order History")
	a.prompt.Println("0. Back")

	switch a.prompt.Line("Select (number, 0 to go back): ") {
	case "1":
		a.manageBookings(ctx, user)
	case "2":
		a.viewTickets(ctx, user)
	case "3":
		a.editDemographics(ctx, user)
	case "4":
		a.viewOrders(ctx, user)
	}
}

func (a *App) viewOrders(ctx context.Context, user *models.User) {
	orders, err := a.bookings.ListOrders(ctx, user.UserID)
	if err != nil {
		a.prompt.Printf("Failed to load orders: %v\n", err)
		return
	}
	if len(orders) == 0 {
		a.prompt.Println("\nYou have no orders.")
		return
	}

	a.prompt.Println("\n--- Order History ---")
	for _, o := range orders {
		a.prompt.Printf("%s  %s  %s  [%s]\n",
			o.OrderNumber, o.CreatedAt.Format("2006-01-02 15:04"), FormatMoney(o.TotalAmount), o.Status)
		for _, line := range o.Items {
			a.prompt.Printf("   %s x%d @ %s\n", line.Name, line.Quantity, FormatMoney(line.UnitPrice))
		}
	}
}

func (a *App) manageBookings(ctx context.Context, user *models.User) {
	tickets, err := a.bookings.ListTickets(ctx, user.UserID, models.TicketConfirmed)
	if err != nil {
		a.prompt.Printf("Failed to load bookings: %v\n", err)
		return
	}
	if len(tickets) == 0 {
		a.prompt.Println("\nNo upcoming bookings found.")
		return
	}

	a.prompt.Println("\n--- Your Bookings ---")
	for i, t := range tickets {
		a.prompt.Printf("%d. %s on %s (ticket %s)\n", i+1, t.ParkName, t.VisitDate, t.TicketID)
	}

	idx, ok := a.prompt.Select("Select (number, 0 to go back): ", len(tickets))
	if !ok {
		return
	}
	ticket := tickets[idx]

	a.prompt.Println("1. Reschedule")
	a.prompt.Println("2. Cancel / Request Refund")
	a.prompt.Println("0. Back")

	switch a.prompt.Line("Select (number, 0 to go back): ") {
	case "1":
		newDate := a.futureDate("New visit date (YYYY-MM-DD): ")
		_, err := a.bookings.Reschedule(ctx, user.UserID, ticket.TicketID, newDate)
		switch {
		case err == nil:
			a.prompt.Println("Reschedule successful.")
		case errors.Is(err, models.ErrScheduleFull):
			a.prompt.Println("Requested date is full. Cannot reschedule.")
		default:
			a.prompt.Printf("Failed to reschedule: %v\n", err)
		}
	case "2":
		err := a.bookings.Refund(ctx, user.UserID, ticket.TicketID)
		switch {
		case err == nil:
			a.prompt.Println("Refund processed.")
		case errors.Is(err, models.ErrRefundDenied):
			a.prompt.Println("Refund denied by policy (less than 24 hours before visit).")
			if a.prompt.YesNo("Do you still want to cancel the booking without refund? (y/n): ") {
				if err := a.bookings.CancelWithoutRefund(ctx, user.UserID, ticket.TicketID); err != nil {
					a.prompt.Printf("Cancellation failed: %v\n", err)
				} else {
					a.prompt.Println("Booking cancelled. No refund will be issued.")
				}
			} else {
				a.prompt.Println("Cancellation aborted. No changes made.")
			}
		default:
			a.prompt.Printf("Refund failed: %v\n", err)
		}
	}
}

func (a *App) viewTickets(ctx context.Context, user *models.User) {
	tickets, err := a.bookings.ListTickets(ctx, user.UserID, "")
	if err != nil {
		a.prompt.Printf("Failed to load tickets: %v\n", err)
		return
	}
	if len(tickets) == 0 {
		a.prompt.Println("\nYou have no tickets.")
		return
	}

	a.prompt.Println("\n--- Your Tickets ---")
	for i, t := range tickets {
		a.prompt.Printf("%d. %s on %s [%s]\n", i+1, t.ParkName, t.VisitDate, t.Status)
	}

	idx, ok := a.prompt.Select("Select (number, 0 to go back): ", len(tickets))
	if !ok {
		return
	}
	ticket := tickets[idx]

	a.prompt.Println("\n--- Ticket Details ---")
	a.prompt.Printf("Ticket ID: %s\n", ticket.TicketID)
	a.prompt.Printf("Park: %s (%s)\n", ticket.ParkName, ticket.ParkID)
	a.prompt.Printf("Visit Date: %s\n", ticket.VisitDate)
	a.prompt.Printf("Price: %s\n", FormatMoney(ticket.Price))
	a.prompt.Printf("Status: %s\n", ticket.Status)
	a.prompt.Println("\nQR Code (ticket id):")
	RenderQR(a.out, ticket.QRCode)
}

func (a *App) editDemographics(ctx context.Context, user *models.User) {
	a.prompt.Println("\n--- Edit Demographics ---")
	a.prompt.Println("Press Enter to keep current value.")

	profile := models.CustomerProfile{}

	a.prompt.Println("\nSelect Age Group (press Enter or 0 to keep current):")
	for i, g := range models.AgeGroups {
		a.prompt.Printf("%d. %s\n", i+1, g)
	}
	if idx, ok := a.prompt.Select("Select age group (number, 0 to keep current): ", len(models.AgeGroups)); ok {
		profile.AgeGroup = models.AgeGroups[idx]
	}

	if g := a.prompt.Line(fmt.Sprintf("Gender (current: %s): ", orUnset(user.Gender))); g != "" {
		profile.Gender = g
	}
	if r := a.prompt.Line(fmt.Sprintf("Region (current: %s): ", orUnset(user.Region))); r != "" {
		profile.Region = r
	}
	if vt := a.prompt.Line(fmt.Sprintf("Visitor type (local/domestic/tourist) (current: %s): ", orUnset(user.VisitorType))); vt != "" {
		profile.VisitorType = vt
	}

	a.prompt.Println("\nMarketing opt-in allows us to email you promotional offers, park updates, and event notifications.")
	if ans := a.prompt.Line(fmt.Sprintf("Marketing opt-in? (y/n) (current: %v): ", user.MarketingOptIn)); ans != "" {
		optIn := ans == "y" || ans == "yes"
		profile.MarketingOptIn = &optIn
	}

	if profile == (models.CustomerProfile{}) {
		a.prompt.Println("No changes made.")
		return
	}

	if err := a.auth.UpdateProfile(ctx, user.UserID, profile); err != nil {
		a.prompt.Printf("Failed to update profile: %v\n", err)
		return
	}

	// Refresh the in-memory session copy
	if updated, err := a.auth.GetUser(ctx, user.UserID); err == nil {
		*user = *updated
	}
	a.prompt.Println("Profile updated.")
}

func orUnset(value string) string {
	if value == "" {
		return "not set"
	}
	return value
}

func (a *App) contactSupport(ctx context.Context, user *models.User) {
	if previous, err := a.support.ListForUser(ctx, user.UserID); err == nil && len(previous) > 0 {
		a.prompt.Println("\n--- Your Support Requests ---")
		for _, t := range previous {
			a.prompt.Printf("[%s] %s: %s\n", t.Status, t.ID, t.Description)
			if t.Resolution != "" {
				a.prompt.Printf("   Resolution: %s\n", t.Resolution)
			}
		}
	}

	desc := a.prompt.Line("\nIssue: ")
	if desc == "" {
		a.prompt.Println("Error: Description cannot be empty. Returning to Customer Menu.")
		return
	}

	ticket, err := a.support.Submit(ctx, user.UserID, desc)
	if err != nil {
		a.prompt.Println("Failed to submit ticket. Try again later.")
		return
	}
	a.prompt.Printf("Ticket submitted. Reference: %s\n", ticket.ID)
}
