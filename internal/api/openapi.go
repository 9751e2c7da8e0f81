package api

import (
	"github.com/societyfixer/hustings/internal/config"
	"github.com/societyfixer/hustings/pkg/openapi"
)

func buildSpec(cfg *config.Config) *openapi.Spec {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.API.BasePath)

	spec.Components.AddSchemas(map[string]*openapi.Schema{
		"Campaign": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":                {Type: "string", Format: "uuid"},
				"user_id":           {Type: "string", Format: "uuid"},
				"candidate_name":    {Type: "string"},
				"portrait_url":      {Type: "string"},
				"election_name":     {Type: "string"},
				"election_deadline": {Type: "string", Format: "date-time"},
				"election_region":   {Type: "string"},
				"scope":             {Type: "string", Enum: []any{"Local", "State", "National"}},
				"position_name":     {Type: "string"},
				"proposed_policies": {Type: "string", Description: "Sanitized rich-text markup"},
				"political_party":   {Type: "string"},
				"gender":            {Type: "string"},
				"date_of_birth":     {Type: "string"},
				"religion":          {Type: "string"},
				"resume_url":        {Type: "string"},
				"contact_email":     {Type: "string"},
				"social_media_url":  {Type: "string"},
				"created_at":        {Type: "string", Format: "date-time"},
				"updated_at":        {Type: "string", Format: "date-time"},
			},
		},
		"CampaignPage": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":      {Type: "array", Items: openapi.SchemaRef("Campaign")},
				"page":      {Type: "integer"},
				"page_size": {Type: "integer"},
				"has_more":  {Type: "boolean", Description: "True iff the page came back full"},
			},
		},
		"Credentials": {
			Type:     "object",
			Required: []string{"email", "password"},
			Properties: map[string]*openapi.Schema{
				"email":    {Type: "string", Format: "email"},
				"password": {Type: "string"},
			},
		},
		"TokenBundle": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"access_token":  {Type: "string"},
				"token_type":    {Type: "string"},
				"expires_in":    {Type: "integer"},
				"refresh_token": {Type: "string"},
			},
		},
		"Notification": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":       {Type: "integer", Format: "int64"},
				"message":  {Type: "string"},
				"type":     {Type: "string", Enum: []any{"success", "danger", "info", "warning"}},
				"duration": {Type: "integer", Description: "Auto-dismiss hint in milliseconds"},
			},
		},
		"UploadResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"bucket": {Type: "string"},
				"key":    {Type: "string"},
				"url":    {Type: "string"},
			},
		},
	})

	pageParams := []*openapi.Parameter{
		openapi.QueryParam("page", "integer", "Page number (1-indexed)", false),
		openapi.QueryParam("page_size", "integer", "Results per page", false),
		openapi.QueryParam("search", "string", "Case-insensitive match against candidate name, position name, or election region", false),
	}

	spec.Paths["/campaigns"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Browse campaigns",
			Tags:       []string{"campaigns"},
			Parameters: pageParams,
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Campaign page", "CampaignPage"),
			},
		},
		Post: &openapi.Operation{
			Summary:     "Publish a campaign",
			Tags:        []string{"campaigns"},
			RequestBody: openapi.RequestBodyJSON("Campaign", true),
			Responses: map[int]*openapi.Response{
				201: openapi.ResponseJSON("Created campaign", "Campaign"),
				400: openapi.ResponseRef("BadRequest"),
				401: openapi.ResponseRef("Unauthorized"),
				422: openapi.ResponseRef("UnprocessableContent"),
			},
		},
	}

	spec.Paths["/campaigns/mine"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:     "List own campaigns",
			Description: "Returns an empty page when no session is supplied.",
			Tags:        []string{"campaigns"},
			Parameters:  pageParams,
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Campaign page", "CampaignPage"),
			},
		},
	}

	spec.Paths["/campaigns/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Find campaign",
			Tags:       []string{"campaigns"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Campaign id")},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Campaign", "Campaign"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
		Put: &openapi.Operation{
			Summary:     "Edit campaign",
			Tags:        []string{"campaigns"},
			Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Campaign id")},
			RequestBody: openapi.RequestBodyJSON("Campaign", true),
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Updated campaign", "Campaign"),
				401: openapi.ResponseRef("Unauthorized"),
				403: openapi.ResponseRef("Forbidden"),
				404: openapi.ResponseRef("NotFound"),
				422: openapi.ResponseRef("UnprocessableContent"),
			},
		},
		Delete: &openapi.Operation{
			Summary:     "Remove campaign",
			Description: "Media cleanup is best-effort and never blocks record removal.",
			Tags:        []string{"campaigns"},
			Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Campaign id")},
			Responses: map[int]*openapi.Response{
				204: {Description: "Deleted"},
				401: openapi.ResponseRef("Unauthorized"),
				403: openapi.ResponseRef("Forbidden"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}

	spec.Paths["/auth/signin"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Sign in",
			Tags:        []string{"auth"},
			RequestBody: openapi.RequestBodyJSON("Credentials", true),
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Session tokens", "TokenBundle"),
				401: openapi.ResponseRef("Unauthorized"),
				429: {Description: "Locked out after repeated failures"},
			},
		},
	}

	spec.Paths["/auth/signup"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Sign up",
			Tags:        []string{"auth"},
			RequestBody: openapi.RequestBodyJSON("Credentials", true),
			Responses: map[int]*openapi.Response{
				201: openapi.ResponseJSON("Session tokens", "TokenBundle"),
				400: openapi.ResponseRef("BadRequest"),
			},
		},
	}

	spec.Paths["/notifications"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List pending notifications",
			Tags:    []string{"notifications"},
			Responses: map[int]*openapi.Response{
				200: {Description: "Pending notifications"},
				401: openapi.ResponseRef("Unauthorized"),
			},
		},
		Post: &openapi.Operation{
			Summary:     "Enqueue a notification",
			Tags:        []string{"notifications"},
			RequestBody: openapi.RequestBodyJSON("Notification", true),
			Responses: map[int]*openapi.Response{
				201: {Description: "Assigned id"},
				401: openapi.ResponseRef("Unauthorized"),
			},
		},
	}

	spec.Paths["/uploads/{bucket}"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:    "Upload campaign media",
			Tags:       []string{"uploads"},
			Parameters: []*openapi.Parameter{{Name: "bucket", In: "path", Required: true, Schema: &openapi.Schema{Type: "string"}}},
			Responses: map[int]*openapi.Response{
				201: openapi.ResponseJSON("Stored blob", "UploadResult"),
				400: openapi.ResponseRef("BadRequest"),
				401: openapi.ResponseRef("Unauthorized"),
				413: {Description: "File exceeds maximum upload size"},
			},
		},
	}

	return spec
}
