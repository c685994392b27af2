package cli

import (
	"context"
	"errors"
	"fmt"

	"park-system/internal/models"
)

func (a *App) adminMenu(ctx context.Context, admin *models.User) {
	for {
		a.prompt.Println("\n--- Admin ---")
		a.prompt.Println("1. Manage Parks")
		a.prompt.Println("2. Manage Merchandise")
		a.prompt.Println("3. Reports")
		a.prompt.Println("4. Audit Logs")
		a.prompt.Println("5. Resolve Support")
		a.prompt.Println("6. Validate Ticket (check-in)")
		a.prompt.Println("7. Logout")

		switch a.prompt.Line("Choice: ") {
		case "1":
			a.manageParks(ctx, admin)
		case "2":
			a.manageMerchandise(ctx, admin)
		case "3":
			a.viewReports(ctx)
		case "4":
			a.viewAuditLogs(ctx)
		case "5":
			a.resolveSupport(ctx, admin)
		case "6":
			a.checkInTicket(ctx, admin)
		case "7", "":
			a.auth.Logout(ctx, admin)
			return
		default:
			a.prompt.Println("Invalid choice.")
		}
	}
}

func (a *App) manageParks(ctx context.Context, admin *models.User) {
	for {
		a.prompt.Println("\n--- Manage Parks ---")
		a.prompt.Println("1. Add Park")
		a.prompt.Println("2. Edit Park")
		a.prompt.Println("3. Delete Park")
		a.prompt.Println("4. List Parks")
		a.prompt.Println("0. Back")

		switch a.prompt.Line("Select (number, 0 to go back): ") {
		case "0", "":
			return
		case "1":
			a.addPark(ctx, admin)
		case "2":
			a.editPark(ctx, admin)
		case "3":
			a.deletePark(ctx, admin)
		case "4":
			a.listParks(ctx)
		default:
			a.prompt.Println("Invalid choice.")
		}
	}
}

func (a *App) addPark(ctx context.Context, admin *models.User) {
	a.prompt.Println("\n--- Add Park ---")
	park := &models.Park{
		Name:        a.prompt.NonEmpty("Name: "),
		Location:    a.prompt.NonEmpty("Location: "),
		Description: a.prompt.Line("Description: "),
		MaxCapacity: a.prompt.PositiveInt("Park max capacity (positive integer): "),
	}
	price := a.prompt.Money("Ticket price (e.g. 12.50): ")
	park.TicketPrice = &price

	for i, n := 0, a.prompt.Int("How many schedules to add (0 for none)? "); i < n; i++ {
		date := a.prompt.Date(fmt.Sprintf("Schedule %d - Date (YYYY-MM-DD): ", i+1))
		if err := park.AddSchedule(date); err != nil {
			a.prompt.Printf("Skipped: %v\n", err)
		}
	}

	created, err := a.catalog.CreatePark(ctx, admin.UserID, park)
	if err != nil {
		a.prompt.Printf("Failed to add park: %v\n", err)
		return
	}
	a.prompt.Printf("Park %s (%s) added.\n", created.Name, created.ParkID)
}

// selectPark lists parks and returns the admin's pick, or nil to go back.
func (a *App) selectPark(ctx context.Context, verb string) *models.Park {
	parks, err := a.catalog.ListParks(ctx)
	if err != nil {
		a.prompt.Printf("Failed to load parks: %v\n", err)
		return nil
	}
	if len(parks) == 0 {
		a.prompt.Printf("No parks available to %s.\n", verb)
		return nil
	}

	a.prompt.Printf("\nSelect Park to %s:\n", verb)
	for i, p := range parks {
		a.prompt.Printf("%d. %s (%s)\n", i+1, p.Name, p.ParkID)
	}
	idx, ok := a.prompt.Select("Select (number, 0 to go back): ", len(parks))
	if !ok {
		return nil
	}
	return parks[idx]
}

func (a *App) editPark(ctx context.Context, admin *models.User) {
	park := a.selectPark(ctx, "edit")
	if park == nil {
		return
	}

	for {
		a.prompt.Printf("\nEditing Park: %s (%s)\n", park.Name, park.ParkID)
		a.prompt.Println("1. Edit Name")
		a.prompt.Println("2. Edit Location")
		a.prompt.Println("3. Edit Description")
		a.prompt.Println("4. Edit Max Capacity")
		a.prompt.Println("5. Manage Schedules")
		a.prompt.Println("6. Edit Ticket Price")
		a.prompt.Println("0. Back")

		switch a.prompt.Line("Select (number, 0 to go back): ") {
		case "0", "":
			return
		case "1":
			park.Name = a.prompt.NonEmpty("New name: ")
			a.savePark(ctx, admin, park, "Name updated.")
		case "2":
			park.Location = a.prompt.NonEmpty("New location: ")
			a.savePark(ctx, admin, park, "Location updated.")
		case "3":
			park.Description = a.prompt.Line("New description: ")
			a.savePark(ctx, admin, park, "Description updated.")
		case "4":
			capacity := a.prompt.PositiveInt("New park max capacity: ")
			if err := a.catalog.SetMaxCapacity(ctx, admin.UserID, park.ParkID, capacity); err != nil {
				a.prompt.Printf("Failed to update max capacity: %v\n", err)
			} else {
				park.MaxCapacity = capacity
				a.prompt.Println("Max capacity updated.")
			}
		case "5":
			a.manageSchedules(ctx, admin, park)
		case "6":
			price := a.prompt.Money("New ticket price: ")
			if err := a.catalog.SetTicketPrice(ctx, admin.UserID, park.ParkID, price); err != nil {
				a.prompt.Printf("Failed to update ticket price: %v\n", err)
			} else {
				park.TicketPrice = &price
				a.prompt.Println("Ticket price updated.")
			}
		default:
			a.prompt.Println("Invalid selection.")
		}
	}
}

func (a *App) savePark(ctx context.Context, admin *models.User, park *models.Park, okMsg string) {
	if err := a.catalog.UpdatePark(ctx, admin.UserID, park); err != nil {
		a.prompt.Printf("Failed to update park: %v\n", err)
		return
	}
	a.prompt.Println(okMsg)
}

func (a *App) manageSchedules(ctx context.Context, admin *models.User, park *models.Park) {
	for {
		a.prompt.Printf("\nSchedules for %s:\n", park.Name)
		for i, s := range park.Schedules {
			a.prompt.Printf("%d. %s | Remaining: %d/%d\n", i+1, s.VisitDate, park.Remaining(s), park.MaxCapacity)
		}
		a.prompt.Println("a. Add schedule")
		a.prompt.Println("d. Delete schedule")
		a.prompt.Println("b. Back")

		switch a.prompt.Line("Choice: ") {
		case "b", "":
			return
		case "a":
			date := a.prompt.Date("Date (YYYY-MM-DD): ")
			if err := a.catalog.AddSchedule(ctx, admin.UserID, park.ParkID, date); err != nil {
				a.prompt.Printf("Failed to add schedule: %v\n", err)
				continue
			}
			park.AddSchedule(date)
			a.prompt.Println("Schedule added.")
		case "d":
			idx, ok := a.prompt.Select("Delete which schedule (number, 0 to go back): ", len(park.Schedules))
			if !ok {
				continue
			}
			date := park.Schedules[idx].VisitDate
			if !a.prompt.YesNo(fmt.Sprintf("Delete schedule %s? (y/n): ", date)) {
				a.prompt.Println("Canceled.")
				continue
			}
			if err := a.catalog.RemoveSchedule(ctx, admin.UserID, park.ParkID, date); err != nil {
				a.prompt.Printf("Failed to delete schedule: %v\n", err)
				continue
			}
			park.RemoveSchedule(date)
			a.prompt.Println("Schedule deleted.")
		default:
			a.prompt.Println("Invalid choice.")
		}
	}
}

func (a *App) deletePark(ctx context.Context, admin *models.User) {
	park := a.selectPark(ctx, "delete")
	if park == nil {
		return
	}
	if !a.prompt.YesNo(fmt.Sprintf("Confirm delete park %s (%s)? (y/n): ", park.Name, park.ParkID)) {
		a.prompt.Println("\nCanceled.")
		return
	}
	if err := a.catalog.DeletePark(ctx, admin.UserID, park.ParkID); err != nil {
		a.prompt.Printf("\nFailed to delete park: %v\n", err)
		return
	}
	a.prompt.Println("\nPark deleted.")
}

func (a *App) listParks(ctx context.Context) {
	parks, err := a.catalog.ListParks(ctx)
	if err != nil {
		a.prompt.Printf("Failed to load parks: %v\n", err)
		return
	}
	if len(parks) == 0 {
		a.prompt.Println("\nNo parks available.")
		return
	}

	a.prompt.Println("\n--- All Parks ---")
	for i, p := range parks {
		a.prompt.Printf("%d. %s (%s)\n", i+1, p.Name, p.ParkID)
		a.prompt.Printf("   Location: %s\n", p.Location)
		a.prompt.Printf("   Description: %s\n", p.Description)
		if p.HasTicketPrice() {
			a.prompt.Printf("   Ticket price: %s\n", FormatMoney(*p.TicketPrice))
		} else {
			a.prompt.Println("   Ticket price: NOT SET")
		}
		if len(p.Schedules) == 0 {
			a.prompt.Println("   No schedules.")
			continue
		}
		a.prompt.Println("   Schedules:")
		for _, s := range p.Schedules {
			a.prompt.Printf("     - %s: Max %d, Current %d, Remaining %d\n", s.VisitDate, p.MaxCapacity, s.CurrentOccupancy, p.Remaining(s))
		}
	}
}

func (a *App) manageMerchandise(ctx context.Context, admin *models.User) {
	for {
		a.prompt.Println("\n--- Manage Merchandise ---")
		a.prompt.Println("1. Add Merchandise")
		a.prompt.Println("2. Edit Merchandise")
		a.prompt.Println("3. Delete Merchandise")
		a.prompt.Println("4. List Merchandise")
		a.prompt.Println("0. Back")

		switch a.prompt.Line("Select (number, 0 to go back): ") {
		case "0", "":
			return
		case "1":
			item := &models.Merchandise{
				SKU:           a.prompt.NonEmpty("SKU: "),
				Name:          a.prompt.NonEmpty("Name: "),
				Price:         a.prompt.Money("Price: "),
				StockQuantity: a.prompt.Int("Stock quantity: "),
			}
			err := a.catalog.CreateMerchandise(ctx, admin.UserID, item)
			switch {
			case err == nil:
				a.prompt.Println("Merchandise added.")
			case errors.Is(err, models.ErrDuplicateSKU):
				a.prompt.Println("SKU already exists.")
			default:
				a.prompt.Printf("Failed to add merchandise: %v\n", err)
			}
		case "2":
			a.editMerchandise(ctx, admin)
		case "3":
			item := a.selectMerchandise(ctx, "delete")
			if item == nil {
				continue
			}
			if !a.prompt.YesNo(fmt.Sprintf("Confirm delete %s (SKU: %s)? (y/n): ", item.Name, item.SKU)) {
				a.prompt.Println("Canceled.")
				continue
			}
			if err := a.catalog.DeleteMerchandise(ctx, admin.UserID, item.SKU); err != nil {
				a.prompt.Printf("Failed to delete merchandise: %v\n", err)
				continue
			}
			a.prompt.Println("Merchandise deleted.")
		case "4":
			items, err := a.catalog.ListMerchandise(ctx)
			if err != nil {
				a.prompt.Printf("Failed to load merchandise: %v\n", err)
				continue
			}
			if len(items) == 0 {
				a.prompt.Println("No merchandise available.")
				continue
			}
			a.prompt.Println("\n--- All Merchandise ---")
			for i, m := range items {
				a.prompt.Printf("%d. %s (SKU: %s) - Price: %s - Stock: %d\n", i+1, m.Name, m.SKU, FormatMoney(m.Price), m.StockQuantity)
			}
		default:
			a.prompt.Println("Invalid choice.")
		}
	}
}

func (a *App) selectMerchandise(ctx context.Context, verb string) *models.Merchandise {
	items, err := a.catalog.ListMerchandise(ctx)
	if err != nil {
		a.prompt.Printf("Failed to load merchandise: %v\n", err)
		return nil
	}
	if len(items) == 0 {
		a.prompt.Printf("No merchandise available to %s.\n", verb)
		return nil
	}

	a.prompt.Printf("\nSelect merchandise to %s:\n", verb)
	for i, m := range items {
		a.prompt.Printf("%d. %s (SKU: %s)\n", i+1, m.Name, m.SKU)
	}
	idx, ok := a.prompt.Select("Select (number, 0 to go back): ", len(items))
	if !ok {
		return nil
	}
	return items[idx]
}

func (a *App) editMerchandise(ctx context.Context, admin *models.User) {
	item := a.selectMerchandise(ctx, "edit")
	if item == nil {
		return
	}

	for {
		a.prompt.Printf("\nEditing Merchandise: %s (SKU: %s)\n", item.Name, item.SKU)
		a.prompt.Println("1. Edit Name")
		a.prompt.Println("2. Edit Price")
		a.prompt.Println("3. Edit Stock")
		a.prompt.Println("4. Restock (add units)")
		a.prompt.Println("0. Back")

		switch a.prompt.Line("Select (number, 0 to go back): ") {
		case "0", "":
			return
		case "1":
			item.Name = a.prompt.NonEmpty("New name: ")
		case "2":
			item.Price = a.prompt.Money("New price: ")
		case "3":
			for {
				stock := a.prompt.Int("New stock quantity: ")
				if stock >= 0 {
					item.StockQuantity = stock
					break
				}
				a.prompt.Println("Stock cannot be negative.")
			}
		case "4":
			qty := a.prompt.PositiveInt("Units to add: ")
			if err := a.catalog.RestockMerchandise(ctx, admin.UserID, item.SKU, qty); err != nil {
				a.prompt.Printf("Failed to restock: %v\n", err)
			} else {
				item.StockQuantity += qty
				a.prompt.Println("Restocked.")
			}
			continue
		default:
			a.prompt.Println("Invalid selection.")
			continue
		}

		if err := a.catalog.UpdateMerchandise(ctx, admin.UserID, item); err != nil {
			a.prompt.Printf("Failed to update merchandise: %v\n", err)
		} else {
			a.prompt.Println("Updated.")
		}
	}
}

func (a *App) viewReports(ctx context.Context) {
	for {
		a.prompt.Println("\n--- ANALYTICS REPORT ---")
		a.prompt.Println("(Demographics shown only for customers who opted into marketing; others are labeled UNKNOWN.)")
		a.prompt.Println("1. Summary (total revenue & orders)")
		a.prompt.Println("2. Breakdown by Park (tickets)")
		a.prompt.Println("3. Breakdown by Date Range")
		a.prompt.Println("4. Breakdown by Payment Status")
		a.prompt.Println("5. Breakdown by Merchandise Orders")
		a.prompt.Println("6. Revenue by Region")
		a.prompt.Println("7. Visitor Counts by Age Group")
		a.prompt.Println("0. Back")

		switch a.prompt.Line("Select (number, 0 to go back): ") {
		case "0", "":
			return
		case "1":
			summary, err := a.reports.GetSummary(ctx)
			if err != nil {
				a.prompt.Printf("Report failed: %v\n", err)
				continue
			}
			a.prompt.Println("\n-- Summary --")
			a.prompt.Printf("Total Revenue: %s\n", FormatMoney(summary.TotalRevenue))
			a.prompt.Printf("Total Orders: %d (refunded: %d)\n", summary.OrderCount, summary.Refunded)
		case "2":
			rows, err := a.reports.TicketRevenueByPark(ctx)
			if err != nil {
				a.prompt.Printf("Report failed: %v\n", err)
				continue
			}
			if len(rows) == 0 {
				a.prompt.Println("\nNo ticket sales found in orders.")
				continue
			}
			a.prompt.Println("\n-- Revenue by Park (tickets) --")
			for _, r := range rows {
				a.prompt.Printf("%s (%s): %s across %d ticket(s)\n", r.Name, r.ParkID, FormatMoney(r.Revenue), r.Tickets)
			}
		case "3":
			from := a.prompt.Date("Start date (YYYY-MM-DD): ")
			to := a.prompt.Date("End date (YYYY-MM-DD): ")
			revenue, count, err := a.reports.RevenueInRange(ctx, from, to)
			if err != nil {
				a.prompt.Printf("Report failed: %v\n", err)
				continue
			}
			a.prompt.Printf("\nOrders between %s and %s: %d\n", from, to, count)
			a.prompt.Printf("Revenue in range: %s\n", FormatMoney(revenue))
		case "4":
			rows, err := a.reports.ByPaymentStatus(ctx)
			if err != nil {
				a.prompt.Printf("Report failed: %v\n", err)
				continue
			}
			a.prompt.Println("\n-- By Payment Status --")
			for _, r := range rows {
				a.prompt.Printf("%s: %d order(s), Revenue: %s\n", r.Status, r.Orders, FormatMoney(r.Value))
			}
		case "5":
			rows, err := a.reports.MerchandiseSales(ctx)
			if err != nil {
				a.prompt.Printf("Report failed: %v\n", err)
				continue
			}
			if len(rows) == 0 {
				a.prompt.Println("\nNo merchandise sales found in orders.")
				continue
			}
			a.prompt.Println("\n-- Merchandise Sales --")
			for _, r := range rows {
				a.prompt.Printf("%s (SKU: %s): %d unit(s) sold, Revenue: %s\n", r.Name, r.SKU, r.Units, FormatMoney(r.Revenue))
			}
		case "6":
			rows, err := a.reports.RevenueByRegion(ctx)
			if err != nil {
				a.prompt.Printf("Report failed: %v\n", err)
				continue
			}
			a.prompt.Println("\n-- Revenue by Region --")
			for _, r := range rows {
				a.prompt.Printf("%s: Revenue: %s\n", r.Bucket, FormatMoney(r.Revenue))
			}
		case "7":
			rows, err := a.reports.VisitorsByAgeGroup(ctx)
			if err != nil {
				a.prompt.Printf("Report failed: %v\n", err)
				continue
			}
			a.prompt.Println("\n-- Visitor Counts by Age Group --")
			for _, r := range rows {
				a.prompt.Printf("%s: %d ticket(s)\n", r.Bucket, r.Count)
			}
		default:
			a.prompt.Println("Invalid selection.")
		}
	}
}

func (a *App) viewAuditLogs(ctx context.Context) {
	logs, err := a.audit.List(ctx, 100)
	if err != nil {
		a.prompt.Printf("Failed to load audit logs: %v\n", err)
		return
	}

	a.prompt.Println("\n--- AUDIT LOGS ---")
	for _, entry := range logs {
		a.prompt.Printf("[%s] [%s] %s: %s\n", entry.Timestamp.Format("2006-01-02 15:04:05"), entry.Category, entry.User, entry.Action)
	}
}

func (a *App) checkInTicket(ctx context.Context, admin *models.User) {
	id := a.prompt.NonEmpty("\nTicket ID (from the visitor's QR code): ")

	ticket, err := a.bookings.CheckIn(ctx, admin.UserID, id)
	switch {
	case err == nil:
		a.prompt.Printf("Checked in: %s at %s on %s (holder %s).\n", ticket.TicketID, ticket.ParkName, ticket.VisitDate, ticket.OwnerID)
	case errors.Is(err, models.ErrTicketNotFound):
		a.prompt.Println("No such ticket.")
	default:
		a.prompt.Printf("Check-in failed: %v\n", err)
	}
}

func (a *App) resolveSupport(ctx context.Context, admin *models.User) {
	tickets, err := a.support.ListOpen(ctx)
	if err != nil {
		a.prompt.Printf("Failed to load support tickets: %v\n", err)
		return
	}
	if len(tickets) == 0 {
		a.prompt.Println("\nNo open support tickets.")
		return
	}

	for i, t := range tickets {
		a.prompt.Printf("%d. [%s] %s\n", i+1, t.ID, t.Description)
	}

	idx, ok := a.prompt.Select("Select (number, 0 to go back): ", len(tickets))
	if !ok {
		return
	}

	note := a.prompt.Line("Note: ")
	if err := a.support.Resolve(ctx, tickets[idx].ID, note); err != nil {
		a.prompt.Printf("Failed to resolve ticket: %v\n", err)
		return
	}
	a.prompt.Println("Ticket resolved.")
}
