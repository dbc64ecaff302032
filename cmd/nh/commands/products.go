package commands

import (
	"fmt"
	"os"

	"github.com/nerves-hub/nerveshub-go/internal/constants"
	"github.com/nerves-hub/nerveshub-go/pkg/nerveshub"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewProductsCommand creates the products command group
func NewProductsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"product"},
		Short:   "Manage products",
		Long:    "List, create, and delete products within the configured organization",
	}

	cmd.AddCommand(newProductsListCommand())
	cmd.AddCommand(newProductsGetCommand())
	cmd.AddCommand(newProductsCreateCommand())
	cmd.AddCommand(newProductsDeleteCommand())

	return cmd
}

func newProductsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List products",
		Long:  "List all products in the configured organization",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			products, err := client.Products().List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list products: %w", err)
			}

			return outputProducts(products)
		},
	}
}

func outputProducts(products []nerveshub.Product) error {
	output := viper.GetString("output")
	switch output {
	case constants.FormatJSON:
		return StandardJSONRenderer(products)
	case constants.FormatYAML:
		return StandardYAMLRenderer(products)
	default:
		if len(products) == 0 {
			_, _ = os.Stdout.WriteString("No products found\n")

			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Name", "Delta Updatable")

		for _, product := range products {
			_ = table.Append(product.Name, formatBool(product.DeltaUpdatable))
		}

		_ = table.Render()

		return nil
	}
}

func newProductsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get PRODUCT_NAME",
		Short: "Get product details",
		Long:  "Display detailed information about a specific product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			product, err := client.Products().Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get product: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case constants.FormatJSON:
				return StandardJSONRenderer(product)
			case constants.FormatYAML:
				return StandardYAMLRenderer(product)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")
				_ = table.Append("Name", product.Name)
				_ = table.Append("Delta Updatable", formatBool(product.DeltaUpdatable))
				_ = table.Render()

				return nil
			}
		},
	}
}

func newProductsCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create PRODUCT_NAME",
		Short: "Create a new product",
		Long:  "Create a new product in the configured organization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			product, err := client.Products().Create(cmd.Context(), &nerveshub.CreateProductRequest{
				Name: args[0],
			})
			if err != nil {
				return fmt.Errorf("failed to create product: %w", err)
			}

			fmt.Printf("Product %s created\n", product.Name)

			return nil
		},
	}
}

func newProductsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete PRODUCT_NAME",
		Short: "Delete a product",
		Long:  "Delete a product from the configured organization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			err = client.Products().Delete(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to delete product: %w", err)
			}

			fmt.Printf("Product %s deleted\n", args[0])

			return nil
		},
	}
}
