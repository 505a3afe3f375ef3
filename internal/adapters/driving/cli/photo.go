package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var photoCmd = &cobra.Command{
	Use:   "photo",
	Short: "Manage the sandbox account's photos",
}

var photoAddCmd = &cobra.Command{
	Use:   "add <path>",
	Short: "Set a local image as the current profile photo",
	Long: `Copy a local image into the filesystem account and make it the current
profile photo, so the rotation loop has a picture to work on.`,
	Args: cobra.ExactArgs(1),
	RunE: runPhotoAdd,
}

func init() {
	photoCmd.AddCommand(photoAddCmd)
	rootCmd.AddCommand(photoCmd)
}

func runPhotoAdd(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(configDir)
	if err != nil {
		return err
	}
	defer rt.Close()

	if rt.Photos == nil {
		return ErrImportUnsupported
	}

	photo, err := rt.Photos.ImportPhoto(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("importing photo: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Profile photo set: %s\n", photo.ID)
	return nil
}
