package service

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/faideclothing/faide-store/views"
)

var privacyPolicy = views.PolicyData{
	Page:  views.Page{Title: "Privacy Policy"},
	Intro: "We respect your privacy. This policy explains what information we collect, why we collect it, and how we use it.",
	Sections: []views.PolicySection{
		{
			Heading: "What we collect",
			Bullets: []string{
				"Contact details you provide (name, phone number, email).",
				"Order details (items, size, color, quantity, delivery address).",
				"Basic site analytics (to improve performance and experience).",
			},
		},
		{
			Heading: "How we use it",
			Bullets: []string{
				"To process and fulfill your order.",
				"To communicate about your order (shipping updates, questions).",
				"To improve the website and product experience.",
			},
		},
		{
			Heading: "Your choices",
			Paragraphs: []string{
				"You can request to update or delete your information by contacting us at faideclothingsa@gmail.com.",
			},
		},
	},
}

var termsOfService = views.PolicyData{
	Page:  views.Page{Title: "Terms of Service"},
	Intro: "By using this website and placing an order, you agree to the terms below.",
	Sections: []views.PolicySection{
		{
			Heading: "Orders",
			Bullets: []string{
				"Orders can be paid via card, PayPal, or confirmed via WhatsApp checkout.",
				"We may contact you if we need size/color confirmation or address clarification.",
			},
		},
		{
			Heading: "Pricing",
			Paragraphs: []string{
				"Prices are listed in ZAR (R). We reserve the right to correct errors and update pricing.",
			},
		},
		{
			Heading: "Availability",
			Paragraphs: []string{
				"Stock availability may change. If an item is unavailable, we'll offer an alternative or refund.",
			},
		},
	},
}

var returnsPolicy = views.PolicyData{
	Page:  views.Page{Title: "Returns & Exchanges"},
	Intro: "If something isn't right, we'll work with you.",
	Sections: []views.PolicySection{
		{
			Heading: "Eligibility",
			Bullets: []string{
				"Items must be unworn, unwashed, and in original condition.",
				"Request must be made within 7 days of delivery.",
			},
		},
		{
			Heading: "Exchanges",
			Paragraphs: []string{
				"Size exchanges are accepted if stock is available.",
			},
		},
		{
			Heading: "How to request",
			Paragraphs: []string{
				"Contact us on WhatsApp or email with your order details.",
			},
		},
	},
}

var shippingPolicy = views.PolicyData{
	Page:  views.Page{Title: "Shipping Policy"},
	Intro: "We ship orders within South Africa. Delivery times depend on your location.",
	Sections: []views.PolicySection{
		{
			Heading: "Processing time",
			Paragraphs: []string{
				"Orders are typically processed within 1-3 business days after confirmation.",
			},
		},
		{
			Heading: "Delivery",
			Bullets: []string{
				"Estimated delivery: 2-7 business days (varies by region).",
				"Tracking may be provided depending on courier service.",
			},
			Paragraphs: []string{
				"Questions? Email faideclothingsa@gmail.com.",
			},
		},
	},
}

func (s *Service) handlePrivacy(c echo.Context) error {
	return c.Render(http.StatusOK, "policy", privacyPolicy)
}

func (s *Service) handleTerms(c echo.Context) error {
	return c.Render(http.StatusOK, "policy", termsOfService)
}

func (s *Service) handleReturns(c echo.Context) error {
	return c.Render(http.StatusOK, "policy", returnsPolicy)
}

func (s *Service) handleShippingPolicy(c echo.Context) error {
	return c.Render(http.StatusOK, "policy", shippingPolicy)
}
