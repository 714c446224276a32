package controllers

import (
	"net/http"
	"strings"

	"carwash-backend/models"
	"carwash-backend/repository"
	"carwash-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateCustomerInput defines the expected JSON structure for creating a customer
type CreateCustomerInput struct {
	Name         string  `json:"name" binding:"required"`
	Phone        string  `json:"phone" binding:"required,phone"`
	Email        string  `json:"email" binding:"omitempty,email"`
	DiscountRate float64 `json:"discount_rate" binding:"min=0,max=100"`
	Notes        string  `json:"notes"`
}

// UpdateCustomerInput only touches the fields that are present
type UpdateCustomerInput struct {
	Name         *string  `json:"name"`
	Phone        *string  `json:"phone" binding:"omitempty,phone"`
	Email        *string  `json:"email" binding:"omitempty,email"`
	DiscountRate *float64 `json:"discount_rate" binding:"omitempty,min=0,max=100"`
	Notes        *string  `json:"notes"`
}

type CustomerController struct {
	customers *repository.CustomerRepository
}

func NewCustomerController(db *gorm.DB) *CustomerController {
	return &CustomerController{customers: repository.NewCustomerRepository(db)}
}

func (cc *CustomerController) Create(c *gin.Context) {
	var input CreateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondBindError(c, err)
		return
	}
	ctx := c.Request.Context()

	phone := strings.TrimSpace(input.Phone)
	taken, err := cc.customers.PhoneTaken(ctx, phone, 0)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	if taken {
		utils.RespondAppError(c, utils.ConflictError("Số điện thoại đã tồn tại"))
		return
	}

	customer := models.Customer{
		Name:         strings.TrimSpace(input.Name),
		Phone:        phone,
		Email:        input.Email,
		DiscountRate: input.DiscountRate,
		Notes:        input.Notes,
	}
	if err := cc.customers.Create(ctx, &customer); err != nil {
		utils.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, customer)
}

func (cc *CustomerController) List(c *gin.Context) {
	customers, err := cc.customers.List(c.Request.Context())
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

// Get returns the customer with their vehicles.
func (cc *CustomerController) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	customer, err := cc.customers.GetWithVehicles(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err, "khách hàng")
		return
	}
	c.JSON(http.StatusOK, customer)
}

// Lookup finds a customer by phone for the invoice form.
func (cc *CustomerController) Lookup(c *gin.Context) {
	phone := strings.TrimSpace(c.Query("phone"))
	if phone == "" {
		utils.RespondAppError(c, utils.ValidationError("Thiếu trường bắt buộc: phone"))
		return
	}
	customer, err := cc.customers.FindByPhone(c.Request.Context(), phone)
	if err != nil {
		respondErr(c, err, "khách hàng")
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (cc *CustomerController) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var input UpdateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondBindError(c, err)
		return
	}
	ctx := c.Request.Context()

	customer, err := cc.customers.Get(ctx, id)
	if err != nil {
		respondErr(c, err, "khách hàng")
		return
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			utils.RespondAppError(c, utils.ValidationError("Thiếu trường bắt buộc: name"))
			return
		}
		customer.Name = name
	}
	if input.Phone != nil {
		phone := strings.TrimSpace(*input.Phone)
		// Check if phone is being changed to another existing customer
		if phone != customer.Phone {
			taken, err := cc.customers.PhoneTaken(ctx, phone, id)
			if err != nil {
				utils.RespondAppError(c, err)
				return
			}
			if taken {
				utils.RespondAppError(c, utils.ConflictError("Số điện thoại đã tồn tại"))
				return
			}
		}
		customer.Phone = phone
	}
	if input.Email != nil {
		customer.Email = *input.Email
	}
	if input.DiscountRate != nil {
		customer.DiscountRate = *input.DiscountRate
	}
	if input.Notes != nil {
		customer.Notes = *input.Notes
	}

	if err := cc.customers.Save(ctx, customer); err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// Delete removes the customer together with vehicles and group memberships.
func (cc *CustomerController) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := cc.customers.Delete(c.Request.Context(), id); err != nil {
		respondErr(c, err, "khách hàng")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Đã xóa khách hàng"})
}

func (cc *CustomerController) Vehicles(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if _, err := cc.customers.Get(ctx, id); err != nil {
		respondErr(c, err, "khách hàng")
		return
	}
	vehicles, err := cc.customers.Vehicles(ctx, id)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicles)
}

func (cc *CustomerController) AddVehicle(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var vehicle models.CustomerVehicle
	if err := c.ShouldBindJSON(&vehicle); err != nil {
		utils.RespondBindError(c, err)
		return
	}
	ctx := c.Request.Context()
	if _, err := cc.customers.Get(ctx, id); err != nil {
		respondErr(c, err, "khách hàng")
		return
	}

	vehicle.ID = 0
	vehicle.CustomerID = id
	vehicle.LicensePlate = strings.ToUpper(strings.TrimSpace(vehicle.LicensePlate))
	if err := cc.customers.AddVehicle(ctx, &vehicle); err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, vehicle)
}
