package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"
)

// buildSchema creates the GraphQL read schema wired to our services.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	coordinateType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Coordinate",
		Fields: graphql.Fields{
			"latitude":  &graphql.Field{Type: graphql.Float},
			"longitude": &graphql.Field{Type: graphql.Float},
		},
	})

	addressType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Address",
		Fields: graphql.Fields{
			"street":     &graphql.Field{Type: graphql.String},
			"city":       &graphql.Field{Type: graphql.String},
			"state":      &graphql.Field{Type: graphql.String},
			"zip_code":   &graphql.Field{Type: graphql.String},
			"country":    &graphql.Field{Type: graphql.String},
			"coordinate": &graphql.Field{Type: coordinateType},
		},
	})

	lineItemType := graphql.NewObject(graphql.ObjectConfig{
		Name: "WasteLineItem",
		Fields: graphql.Fields{
			"category_id": &graphql.Field{Type: graphql.String},
			"quantity":    &graphql.Field{Type: graphql.Float},
			"unit":        &graphql.Field{Type: graphql.String},
		},
	})

	scheduleType := graphql.NewObject(graphql.ObjectConfig{
		Name: "ScheduleSlot",
		Fields: graphql.Fields{
			"date":      &graphql.Field{Type: graphql.DateTime},
			"time_slot": &graphql.Field{Type: graphql.String},
		},
	})

	requestType := graphql.NewObject(graphql.ObjectConfig{
		Name: "PickupRequest",
		Fields: graphql.Fields{
			"id":         &graphql.Field{Type: graphql.String},
			"user_id":    &graphql.Field{Type: graphql.String},
			"company_id": &graphql.Field{Type: graphql.String},
			"status":     &graphql.Field{Type: graphql.String},
			"items":      &graphql.Field{Type: graphql.NewList(lineItemType)},
			"address":    &graphql.Field{Type: addressType},
			"schedule":   &graphql.Field{Type: scheduleType},
			"notes":      &graphql.Field{Type: graphql.String},
			"created_at": &graphql.Field{Type: graphql.DateTime},
			"updated_at": &graphql.Field{Type: graphql.DateTime},
		},
	})

	categoryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "WasteCategory",
		Fields: graphql.Fields{
			"id":                 &graphql.Field{Type: graphql.String},
			"name":               &graphql.Field{Type: graphql.String},
			"description":        &graphql.Field{Type: graphql.String},
			"guidelines":         &graphql.Field{Type: graphql.String},
			"accepted_items":     &graphql.Field{Type: graphql.NewList(graphql.String)},
			"not_accepted_items": &graphql.Field{Type: graphql.NewList(graphql.String)},
		},
	})

	companyType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Company",
		Fields: graphql.Fields{
			"id":                  &graphql.Field{Type: graphql.String},
			"name":                &graphql.Field{Type: graphql.String},
			"email":               &graphql.Field{Type: graphql.String},
			"phone":               &graphql.Field{Type: graphql.String},
			"address":             &graphql.Field{Type: addressType},
			"service_radius_km":   &graphql.Field{Type: graphql.Float},
			"accepted_categories": &graphql.Field{Type: graphql.NewList(graphql.String)},
			"rating":              &graphql.Field{Type: graphql.Float},
			"distance":            &graphql.Field{Type: graphql.Float},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"categories": &graphql.Field{
				Type:        graphql.NewList(categoryType),
				Description: "List all waste categories",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Categories.List(p.Context)
				},
			},
			"request": &graphql.Field{
				Type:        requestType,
				Description: "Get a pickup request by ID",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id := p.Args["id"].(string)
					return deps.Requests.GetByID(p.Context, id)
				},
			},
			"requestsByUser": &graphql.Field{
				Type:        graphql.NewList(requestType),
				Description: "List a customer's pickup requests",
				Args: graphql.FieldConfigArgument{
					"user_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					userID := p.Args["user_id"].(string)
					return deps.Requests.ListByUser(p.Context, userID)
				},
			},
			"requestsByCompany": &graphql.Field{
				Type:        graphql.NewList(requestType),
				Description: "List the requests visible to a company",
				Args: graphql.FieldConfigArgument{
					"company_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					companyID := p.Args["company_id"].(string)
					return deps.Requests.ListByCompany(p.Context, companyID)
				},
			},
			"company": &graphql.Field{
				Type:        companyType,
				Description: "Get a company by ID",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id := p.Args["id"].(string)
					return deps.Companies.GetByID(p.Context, id)
				},
			},
			"companiesNearby": &graphql.Field{
				Type:        graphql.NewList(companyType),
				Description: "Find companies serving a location",
				Args: graphql.FieldConfigArgument{
					"lat":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"lng":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"radius": &graphql.ArgumentConfig{Type: graphql.Float, DefaultValue: 10000.0},
					"limit":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 20},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					lat := p.Args["lat"].(float64)
					lng := p.Args["lng"].(float64)
					radius := p.Args["radius"].(float64)
					limit := p.Args["limit"].(int)
					return deps.Companies.FindNearby(p.Context, lat, lng, radius, limit)
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.Context(),
		})

		return c.JSON(result)
	}
}
