/*
The sync package implements a single run of settings-sync. A run works on a
temporary clone of the remote repository, called the working directory:

 1. The remote repository is cloned into the working directory.
 2. Every file in the FileMap is copied, either from the working directory
    to its local path (download), or from its local path into the working
    directory (upload).
 3. For uploads, every file is staged, and then committed and pushed once.
 4. The working directory is removed, whether or not the previous steps
    succeeded. A working directory that already existed before the run
    aborts the run before step 1, and is left alone.

Runs are strictly sequential and nothing is retried. Files are synced as a
whole. Conflicts between the local and remote versions aren't detected, the
copy simply overwrites the destination.
*/
package sync
