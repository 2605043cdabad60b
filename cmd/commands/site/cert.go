package site

import (
	"fmt"
	"os"

	"github.com/uldin-nl/hostctl/internal/domain"

	"github.com/spf13/cobra"
)

func CertCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cert",
		Short: "Manage a site's SSL certificates",
	}

	cmd.AddCommand(certCreateCommand())
	cmd.AddCommand(certDeleteCommand())

	return cmd
}

func certCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <site-id> <domains>",
		Short: "Request an SSL certificate",
		Long: `Request an SSL certificate for a site. For the default letsencrypt type
the positional argument names the domain(s) to cover; for a custom
certificate it is the path to the PEM file and --key is required.

Example:
  hostctl site cert create 512 blog.example.com --server 42
  hostctl site cert create 512 fullchain.pem --server 42 --type custom --key privkey.pem`,
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			serverID, err := serverIDFrom(cmd)
			if err != nil {
				return err
			}
			siteID, err := parseSiteID(args[0])
			if err != nil {
				return err
			}

			opts := domain.CreateCertificateOpts{Certificate: args[1]}
			opts.Type, _ = cmd.Flags().GetString("type")
			opts.Force, _ = cmd.Flags().GetBool("force")

			keyPath, _ := cmd.Flags().GetString("key")
			if opts.Type == "custom" {
				if keyPath == "" {
					return fmt.Errorf("a custom certificate needs --key")
				}
				cert, err := os.ReadFile(args[1])
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", args[1], err)
				}
				key, err := os.ReadFile(keyPath)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", keyPath, err)
				}
				opts.Certificate = string(cert)
				opts.Private = string(key)
			}

			client, err := newClient()
			if err != nil {
				return err
			}

			cert, err := client.CreateCertificate(cmd.Context(), serverID, siteID, opts)
			if err != nil {
				return fmt.Errorf("failed to create certificate: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Certificate %d requested (%s).\n", cert.ID, cert.Status)
			return nil
		},
	}

	cmd.Flags().String("type", "letsencrypt", "Certificate type: letsencrypt or custom")
	cmd.Flags().String("key", "", "Private key file for a custom certificate")
	cmd.Flags().Bool("force", false, "Replace an existing certificate")

	return cmd
}

func certDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <site-id> <certificate-id>",
		Short: "Remove an SSL certificate",
		Long: `Remove an SSL certificate from a site.

Example:
  hostctl site cert delete 512 77 --server 42`,
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			serverID, err := serverIDFrom(cmd)
			if err != nil {
				return err
			}
			siteID, err := parseSiteID(args[0])
			if err != nil {
				return err
			}
			certID, err := parseID(args[1], "certificate")
			if err != nil {
				return err
			}

			client, err := newClient()
			if err != nil {
				return err
			}

			if err := client.DeleteCertificate(cmd.Context(), serverID, siteID, certID); err != nil {
				return fmt.Errorf("failed to delete certificate %d: %w", certID, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Certificate %d deleted.\n", certID)
			return nil
		},
	}
}
