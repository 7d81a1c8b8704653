package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/bissquit/hotel-desk/internal/bookings"
	"github.com/bissquit/hotel-desk/internal/domain"
	"github.com/bissquit/hotel-desk/internal/identity"
)

func (c *Console) adminMenu(ctx context.Context, session *domain.Session) error {
	for {
		c.println("\n=== Admin Menu ===")
		c.println("1. View all users")
		c.println("2. Make user admin")
		c.println("3. Delete user")
		c.println("4. View staff by position")
		c.println("5. Update staff position")
		c.println("6. Logout")

		choice, err := c.prompt("Enter choice (1-6): ")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			c.viewAllUsers(ctx, session)
		case "2":
			err = c.makeAdmin(ctx, session)
		case "3":
			err = c.deleteUser(ctx, session)
		case "4":
			c.viewStaffByPosition(ctx, session)
		case "5":
			err = c.updatePosition(ctx, session)
		case "6":
			return nil
		default:
			c.println("Invalid choice. Please select 1-6.")
		}
		if err != nil {
			return err
		}
	}
}

func (c *Console) viewAllUsers(ctx context.Context, session *domain.Session) {
	dir, err := c.admin.ListAll(ctx, session)
	if err != nil {
		c.report(ctx, "list users", err)
		return
	}

	c.println("\nAdmins:")
	for _, a := range dir.Admins {
		c.printf("Username: %s (Admin)\n", a.Username)
	}
	c.println("\nStaff:")
	for _, a := range dir.Staff {
		c.printf("Username: %s, Position: %s\n", a.Username, a.Position)
	}
	c.println("\nUsers:")
	for _, a := range dir.Customers {
		c.printf("Username: %s (User)\n", a.Username)
	}
}

func (c *Console) makeAdmin(ctx context.Context, session *domain.Session) error {
	username, err := c.prompt("Enter username to make admin: ")
	if err != nil {
		return err
	}

	if err := c.admin.PromoteToAdmin(ctx, session, username); err != nil {
		c.report(ctx, "promote", err)
		return nil
	}

	c.printf("%s is now an admin.\n", username)
	return nil
}

func (c *Console) deleteUser(ctx context.Context, session *domain.Session) error {
	username, err := c.prompt("Enter username to delete: ")
	if err != nil {
		return err
	}

	c.println("1. Admin")
	c.println("2. Staff")
	c.println("3. User")
	choice, err := c.prompt("Select the account type (1-3): ")
	if err != nil {
		return err
	}

	var role domain.Role
	switch choice {
	case "1":
		role = domain.RoleAdmin
	case "2":
		role = domain.RoleStaff
	case "3":
		role = domain.RoleCustomer
	default:
		c.println("Invalid choice. Please select 1-3.")
		return nil
	}

	if err := c.admin.DeleteUser(ctx, session, username, role); err != nil {
		c.report(ctx, "delete", err)
		return nil
	}

	c.printf("Deleted %s.\n", username)
	return nil
}

func (c *Console) viewStaffByPosition(ctx context.Context, session *domain.Session) {
	groups, err := c.admin.ListByPosition(ctx, session)
	if err != nil {
		c.report(ctx, "list staff", err)
		return
	}

	for _, group := range groups {
		c.printf("\n%ss:\n", c.title.String(string(group.Position)))
		for _, username := range group.Usernames {
			c.printf("Username: %s\n", username)
		}
	}
}

func (c *Console) updatePosition(ctx context.Context, session *domain.Session) error {
	username, err := c.prompt("Enter staff username to update position: ")
	if err != nil {
		return err
	}

	if _, err := c.admin.FindStaff(ctx, session, username); err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			c.println("Staff member not found.")
		} else {
			c.report(ctx, "update position", err)
		}
		return nil
	}

	position, err := c.promptPosition("Enter new position (" + positionList() + "): ")
	if err != nil {
		return err
	}

	if err := c.admin.UpdatePosition(ctx, session, username, position); err != nil {
		c.report(ctx, "update position", err)
		return nil
	}

	c.printf("Updated %s's position to %s.\n", username, position)
	return nil
}

func (c *Console) userMenu(ctx context.Context, session *domain.Session) error {
	for {
		c.println("\n=== User Menu ===")
		c.println("1. View Rooms")
		c.println("2. Book a Room")
		c.println("3. Order Food")
		c.println("4. Book an Event")
		c.println("5. Logout")

		choice, err := c.prompt("Enter choice (1-5): ")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			c.printNumbered("Available Rooms", domain.Rooms)
		case "2":
			err = c.bookRoom(ctx, session)
		case "3":
			err = c.orderFood(ctx, session)
		case "4":
			err = c.bookEvent(ctx, session)
		case "5":
			return nil
		default:
			c.println("Invalid choice. Please select 1-5.")
		}
		if err != nil {
			return err
		}
	}
}

func (c *Console) bookRoom(ctx context.Context, session *domain.Session) error {
	c.printNumbered("Available Rooms", domain.Rooms)
	room, ok, err := c.promptInt(fmt.Sprintf("Select the room (1-%d): ", len(domain.Rooms)))
	if err != nil {
		return err
	}
	if !ok || room < 1 || room > len(domain.Rooms) {
		c.printf("Invalid selection. Please choose a room number between 1-%d.\n", len(domain.Rooms))
		return nil
	}

	name, phone, ok, err := c.promptContact()
	if err != nil || !ok {
		return err
	}

	booking, err := c.bookings.BookRoom(ctx, session, bookings.RoomInput{
		Room:       room,
		ClientName: name,
		Phone:      phone,
	})
	if err != nil {
		c.report(ctx, "book room", err)
		return nil
	}

	c.printf("Booking details saved successfully! Reference: %s\n", booking.Reference)
	return nil
}

func (c *Console) orderFood(ctx context.Context, session *domain.Session) error {
	c.printNumbered("Menu Card", domain.FoodCategories)
	category, ok, err := c.promptInt(fmt.Sprintf("Select the type of food (1-%d): ", len(domain.FoodCategories)))
	if err != nil {
		return err
	}
	if !ok || category < 1 || category > len(domain.FoodCategories) {
		c.printf("Invalid selection. Please choose a number between 1-%d.\n", len(domain.FoodCategories))
		return nil
	}

	name, phone, ok, err := c.promptContact()
	if err != nil || !ok {
		return err
	}

	order, err := c.bookings.OrderFood(ctx, session, bookings.FoodInput{
		Category:   category,
		ClientName: name,
		Phone:      phone,
	})
	if err != nil {
		c.report(ctx, "order food", err)
		return nil
	}

	c.printf("Your order was placed successfully! Reference: %s\n", order.Reference)
	return nil
}

func (c *Console) bookEvent(ctx context.Context, session *domain.Session) error {
	c.printNumbered("Event Types", domain.EventTypes)
	eventType, ok, err := c.promptInt(fmt.Sprintf("Select the event (1-%d): ", len(domain.EventTypes)))
	if err != nil {
		return err
	}
	if !ok || eventType < 1 || eventType > len(domain.EventTypes) {
		c.printf("Invalid selection. Please choose a number between 1-%d.\n", len(domain.EventTypes))
		return nil
	}

	name, phone, ok, err := c.promptContact()
	if err != nil || !ok {
		return err
	}

	date, err := c.prompt("Enter the date of the event (YYYY-MM-DD): ")
	if err != nil {
		return err
	}
	guests, ok, err := c.promptInt("Enter the number of guests: ")
	if err != nil {
		return err
	}
	if !ok {
		c.println("Invalid number of guests.")
		return nil
	}

	booking, err := c.bookings.BookEvent(ctx, session, bookings.EventInput{
		EventType:  eventType,
		ClientName: name,
		Phone:      phone,
		Date:       date,
		Guests:     guests,
	})
	if err != nil {
		c.report(ctx, "book event", err)
		return nil
	}

	c.printf("Your event was booked successfully! Reference: %s\n", booking.Reference)
	return nil
}

// promptContact asks for the client name and re-prompts the phone number
// until it is valid. ok is false when the name was left empty.
func (c *Console) promptContact() (name, phone string, ok bool, err error) {
	name, err = c.prompt("Enter the name of the client: ")
	if err != nil {
		return "", "", false, err
	}
	if name == "" {
		c.println("Name cannot be empty.")
		return "", "", false, nil
	}

	for {
		phone, err = c.prompt("Enter the phone number: ")
		if err != nil {
			return "", "", false, err
		}
		if c.bookings.CheckPhone(phone) == nil {
			return name, phone, true, nil
		}
		c.println("Invalid input, please enter a 10 digit number.")
	}
}

func (c *Console) printNumbered(heading string, items []string) {
	c.printf("\n=== %s ===\n", heading)
	for i, item := range items {
		c.printf("%d. %s\n", i+1, item)
	}
}
